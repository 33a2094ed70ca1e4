// internal/environment/environment.go
//
// Deployment-tier metadata.
//
// Context
// -------
// The service runs unchanged in three tiers (dev, qa, prod) and a few
// aliases of each.  `Resolve` turns the free-form `ENVIRONMENT` value plus
// the optional project id into one immutable `Config` that handlers read
// for colors, purpose text, the debug flag, and sample data selection.
//
// Notes
// -----
//   - Lookup is case-insensitive.  Anything outside the known set is the
//     Unknown tier, never an error.
//   - `Config.Name` keeps the caller's original spelling so responses echo
//     exactly what the operator configured.
//   - Oxford commas, two spaces after periods.
package environment

import (
	"fmt"
	"strings"
)

// Tier groups environment aliases.
type Tier int

const (
	Unknown Tier = iota
	Dev
	QA
	Prod
)

func (t Tier) String() string {
	switch t {
	case Dev:
		return "dev"
	case QA:
		return "qa"
	case Prod:
		return "prod"
	default:
		return "unknown"
	}
}

const (
	ColorDev     = "#FFA500" // orange
	ColorQA      = "#4169E1" // blue
	ColorProd    = "#228B22" // green
	ColorUnknown = "#808080" // gray

	PurposeUnknown = "Unknown environment"
)

var aliases = map[string]Tier{
	"dev":         Dev,
	"development": Dev,
	"qa":          QA,
	"staging":     QA,
	"prod":        Prod,
	"production":  Prod,
}

var colors = map[Tier]string{
	Dev:  ColorDev,
	QA:   ColorQA,
	Prod: ColorProd,
}

var purposes = map[Tier]string{
	Dev:  "Active development and testing",
	QA:   "Quality assurance and validation",
	Prod: "Live production environment",
}

// Config is built once at startup and never mutated.
type Config struct {
	Name      string // as configured, original case
	ProjectID string // empty when absent
	Tier      Tier
	Color     string
	Purpose   string
	Debug     bool
}

// Classify maps a raw environment name to its Tier.
func Classify(name string) Tier {
	return aliases[strings.ToLower(name)]
}

// Resolve derives display metadata for name.  Pure and deterministic.
func Resolve(name, projectID string) Config {
	tier := Classify(name)

	color, ok := colors[tier]
	if !ok {
		color = ColorUnknown
	}
	purpose, ok := purposes[tier]
	if !ok {
		purpose = PurposeUnknown
	}

	return Config{
		Name:      name,
		ProjectID: projectID,
		Tier:      tier,
		Color:     color,
		Purpose:   purpose,
		Debug:     tier == Dev,
	}
}

// HasProject reports whether a project id was configured.
func (c Config) HasProject() bool { return c.ProjectID != "" }

// URL is the public App Engine address for the project, or "unknown".
func (c Config) URL() string {
	if !c.HasProject() {
		return "unknown"
	}
	return fmt.Sprintf("https://%s.uc.r.appspot.com", c.ProjectID)
}
