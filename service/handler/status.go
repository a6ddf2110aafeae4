package handler

import (
	"net/http"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
)

const StatusURI = "/status/"

// StatusOK returns up status
func StatusOK(writer http.ResponseWriter, request *http.Request) {
	if request.Body != nil {
		if err := request.Body.Close(); err != nil {
			grip.GetSender().Send(message.NewErrorMessage(level.Warning, err))
		}
	}
	writer.WriteHeader(http.StatusOK)
}
