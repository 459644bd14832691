package identity

import "strings"

const (
	BrandName = "Paneweave"
	// AppSlug is the canonical identifier for user-facing and on-disk state.
	// It matches the primary CLI binary name; pw is a short alias.
	AppSlug = "paneweave"
	CLIName = "paneweave"

	ProjectConfigFileYML  = ".paneweave.yml"
	ProjectConfigFileYAML = ".paneweave.yaml"

	GlobalConfigFile  = "config.yml"
	GlobalPresetsDir  = "layouts"
	LayoutStateDir    = "state"
	WorkspaceDBFile   = "workspaces.db"
)

var inputAliases = []string{"pw"}

// IsCLICommandToken reports whether a token refers to this CLI.
func IsCLICommandToken(token string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(token))
	if trimmed == "" {
		return false
	}
	if trimmed == CLIName {
		return true
	}
	for _, alias := range inputAliases {
		if trimmed == alias {
			return true
		}
	}
	return false
}
