package cmd

import (
	"fmt"
	"io"

	"github.com/compozy/autotag/internal/actions"
	"github.com/compozy/autotag/internal/config"
	"github.com/compozy/autotag/internal/orchestrator"
	"github.com/compozy/autotag/internal/repository"
	"github.com/compozy/autotag/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo  repository.FileSystemRepository
	gitRepo repository.GitRepository
	ghRepo  repository.GithubRepository
	outputs actions.OutputSink
}

// newContainer creates a new container with all the dependencies.
func newContainer(cmd *cobra.Command) (*container, error) {
	cfg, err := config.LoadConfig(viper.New(), cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	inActions := actions.InActions()
	var logOut io.Writer = cmd.ErrOrStderr()
	if inActions {
		// The runner only parses workflow commands from stdout.
		logOut = cmd.OutOrStdout()
	}
	logger := actions.NewLogger(logOut, cfg.Debug, inActions)

	fsRepo := repository.NewFileSystemRepository()
	gitRepo, err := repository.NewGitRepository(cfg.Workspace)
	if err != nil {
		logger.Debug("Workspace is not a git checkout", zap.Error(err))
		gitRepo = repository.NewUnavailableGitRepository(err)
	}

	ghRepo, err := newGithubRepository(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DryRun {
		logger.Info("Dry run: tags and references will not be written")
		ghRepo = repository.NewDryRunGithubRepository(ghRepo, cfg.GithubOwner, cfg.GithubRepo)
	}

	return &container{
		cfg:     cfg,
		logger:  logger,
		fsRepo:  fsRepo,
		gitRepo: gitRepo,
		ghRepo:  ghRepo,
		outputs: actions.NewOutputWriter(fsRepo, cfg.OutputFile, cmd.OutOrStdout()),
	}, nil
}

// newGithubRepository returns the API-backed repository, or a no-op one when
// the configuration cannot reach GitHub. The orchestrator reports why.
func newGithubRepository(cfg *config.Config) (repository.GithubRepository, error) {
	if err := cfg.ValidateForGitHubOperations(); err != nil {
		return repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo), nil
	}
	ghRepo, err := repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo, cfg.GithubAPIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GitHub repository: %w", err)
	}
	return ghRepo, nil
}

func (c *container) orchestrator() *orchestrator.AutoTagOrchestrator {
	return orchestrator.NewAutoTagOrchestrator(c.gitRepo, c.ghRepo, c.fsRepo, c.outputs, c.logger)
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	rootCmd.Version = version.Summary()
	rootCmd.AddCommand(NewTagCmd())
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
