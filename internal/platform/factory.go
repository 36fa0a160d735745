package platform

import (
	"golang.org/x/text/unicode/norm"

	"github.com/aretw0/strops/pkg/core"
)

// New wires a core.Service from the given options.
//
//	svc := strops.New(strops.WithNormalization(true))
func New(opts ...Option) *core.Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var svcOpts []core.ServiceOption
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithLogger(o.logger))
	}
	if o.normalize {
		svcOpts = append(svcOpts, core.WithNormalizer(norm.NFC.String))
	}
	if o.observer != nil {
		svcOpts = append(svcOpts, core.WithObserver(o.observer))
	}

	return core.NewService(svcOpts...)
}
