package pages

// Mode selects which kind of page a name resolves to.
type Mode string

// Supported modes, listed from highest to lowest precedence.
const (
	ModeExplicitSlug     Mode = Mode("explicit-slug")
	ModeSourceRepository Mode = Mode("source-repository")
	ModeRegistry         Mode = Mode("registry")
)

// RegistryChoice selects the registry whose page is produced whenever a registry page is the destination.
type RegistryChoice string

// Supported registries.
const (
	RegistryPrimary   RegistryChoice = RegistryChoice("primary")
	RegistryAlternate RegistryChoice = RegistryChoice("alternate")
)

// ModeFlags mirrors the independent command-line switches.
type ModeFlags struct {
	SourceRepository  bool
	AlternateRegistry bool
	ExplicitSlug      bool
}

// Selection is the immutable resolution configuration for a run.
type Selection struct {
	Mode     Mode
	Registry RegistryChoice
}

// ParseMode collapses the switches into a single mode by fixed precedence: slug, then source repository, then registry.
func ParseMode(flags ModeFlags) Mode {
	switch {
	case flags.ExplicitSlug:
		return ModeExplicitSlug
	case flags.SourceRepository:
		return ModeSourceRepository
	default:
		return ModeRegistry
	}
}

// ParseRegistryChoice maps the alternate-registry switch.
func ParseRegistryChoice(flags ModeFlags) RegistryChoice {
	if flags.AlternateRegistry {
		return RegistryAlternate
	}
	return RegistryPrimary
}

// ParseSelection combines ParseMode and ParseRegistryChoice.
func ParseSelection(flags ModeFlags) Selection {
	return Selection{Mode: ParseMode(flags), Registry: ParseRegistryChoice(flags)}
}
