package app

import (
	"github.com/rdarder/modular/internal/adapters"
	"github.com/rdarder/modular/internal/policies"
	"github.com/rdarder/modular/internal/ports"
)

type Service struct {
	Source   ports.DeclSourcePort
	Reporter ports.ReporterPort
	Policy   policies.Validation
}

func NewService() Service {
	return Service{
		Source:   adapters.NewDeclFileAdapter(),
		Reporter: adapters.NewTextReporter(),
		Policy:   policies.Default(),
	}
}
