package plugin

var builtin = NewCatalog()

func init() {
	builtin.Register(ParameterNamesName, func() (Plugin, error) { return NewParameterNames(CreatorDelegating), nil })
	builtin.Register(SnakeCaseName, func() (Plugin, error) { return NewSnakeCase(), nil })
	builtin.Register(UnixTimeName, func() (Plugin, error) { return NewUnixTime(), nil })
	builtin.Register(GojayName, func() (Plugin, error) { return NewGojay(), nil })
}

// Builtin returns a copy of the catalog holding the bundled plugins
func Builtin() *Catalog {
	return builtin.Clone()
}
