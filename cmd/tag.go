package cmd

import (
	"github.com/spf13/cobra"
)

// NewTagCmd creates the tag command
func NewTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag",
		Short: "Create or update the tag for the package.json version",
		Long: `Create or update the tag for the package.json version.

The workflow:
- Reads the version from <workspace>/<package-root>/package.json
- Lists the repository tags and checks for <prefix><version><suffix>
- Skips when the tag exists, unless --overwrite=true
- Builds the tag message from the commits since the latest tag when
  --tag-message is empty
- Creates the annotated tag and points refs/tags/<name> at it
- Writes version, tagname, tagsha, taguri, tagmessage and tagref outputs`,
		Args: cobra.NoArgs,
		RunE: runTag,
	}
}

func runTag(cmd *cobra.Command, _ []string) error {
	c, err := newContainer(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.logger.Sync()
	}()
	_, err = c.orchestrator().Execute(cmd.Context(), c.cfg)
	return err
}
