package gen

import "fmt"

var (
	// FeatureNameStrings emits a get_fully_qualified_name function for
	// every struct and table.
	FeatureNameStrings = Feature{
		Name:        "generate_name_strings",
		Stage:       Stable,
		Default:     false,
		Description: "Generates get_fully_qualified_name() for structs and tables",
	}

	// FeatureMutableBuffer emits set_<field> mutators on fixed structs, so
	// values can be changed in place inside a buffer.
	FeatureMutableBuffer = Feature{
		Name:        "mutable_buffer",
		Stage:       Beta,
		Default:     false,
		Description: "Generates in-place mutators for fields of fixed structs",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureNameStrings,
		FeatureMutableBuffer,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are not expected to change their output.
	Beta

	// Stable features have been generating code in production for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return fmt.Sprintf("FeatureStage(%d)", int(s))
	}
}

// A Feature of the code generator.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, error) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, nil
		}
	}
	return Feature{}, NewConfigError("Features", name, "unknown feature")
}
