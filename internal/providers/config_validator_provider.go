package providers

import (
	"fmt"
	"stash/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (v *CnfValidator) Validate() error {
	for name, section := range map[string]interface{}{
		"webServer":   &v.conf.WebServer,
		"persistence": &v.conf.Persistence,
		"logger":      &v.conf.Logger,
		"backend":     &v.conf.Backend,
		"sweep":       &v.conf.Sweep,
	} {
		vd := validate.Struct(section)
		if !vd.Validate() {
			return fmt.Errorf("invalid %s config: %w", name, vd.Errors)
		}
	}
	if v.conf.Persistence.MaxEntries < 0 {
		return fmt.Errorf("invalid persistence config: maxEntries must not be negative")
	}
	return nil
}
