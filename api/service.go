package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/db"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/gateway"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/infobox"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/tmpstore"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/util"
)

const (
	// api routes
	DocumentsURL       = "/documents"
	DocumentsParseURL  = "/documents/parse"
	DocumentsExportURL = "/documents/export"
)

var (
	// api errors
	ErrInvalidDocumentID = errors.New("invalid document id")
	ErrDocumentIDChanged = errors.New("document id in body does not match url")
)

type Service struct {
	config     util.Config
	store      db.Store
	drafts     tmpstore.Store
	serializer infobox.Serializer
	links      gateway.LinkResolver
	icons      gateway.IconResolver
	server     *http.Server
	router     *gin.Engine
}

// Returns new service instance with provided config and stores.
func NewService(
	config util.Config,
	store db.Store,
	drafts tmpstore.Store,
) (*Service, error) {

	wiki := gateway.NewClient(config.WikiTimeout)

	service := &Service{
		config:     config,
		store:      store,
		drafts:     drafts,
		serializer: infobox.NewSerializer(nil, nil),
		links:      wiki,
		icons:      wiki,
	}

	server := &http.Server{
		Addr: config.HTTPServerAddress,
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time you'll spend writing the response (no "forever hanging" clients)
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
