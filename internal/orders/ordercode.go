package orders

import (
	"strings"

	"github.com/openlmis/fulfillment-backend/pkg/config"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
)

const maxProgramCodeLength = 35

// CodeGenerator derives the immutable order code from the order's external
// reference, shaped by the configured prefix and suffix options.
type CodeGenerator struct {
	cfg config.OrderCodeConfig
}

// NewCodeGenerator builds a generator from configuration.
func NewCodeGenerator(cfg config.OrderCodeConfig) *CodeGenerator {
	return &CodeGenerator{cfg: cfg}
}

// Generate returns the order code for the order. programCode is optional
// and only used when the program segment is enabled.
func (g *CodeGenerator) Generate(order *models.Order, programCode string) string {
	var code strings.Builder

	if g.cfg.IncludePrefix && g.cfg.Prefix != "" {
		code.WriteString(g.cfg.Prefix)
	}
	if g.cfg.IncludeProgramCode && programCode != "" {
		if len(programCode) > maxProgramCodeLength {
			programCode = programCode[:maxProgramCodeLength]
		}
		code.WriteString(programCode)
	}

	code.WriteString(order.ExternalID.String())

	if g.cfg.IncludeTypeSuffix {
		if order.Emergency {
			code.WriteString("E")
		} else {
			code.WriteString("R")
		}
	}
	return code.String()
}
