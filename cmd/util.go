package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/prflight/prflight/pkg/ai"
	"github.com/prflight/prflight/pkg/azdevops"
	"github.com/prflight/prflight/pkg/config"
	"github.com/prflight/prflight/pkg/git"
	"github.com/prflight/prflight/pkg/workflow"
)

// newRunner wires the concrete flow dependencies from the loaded config.
func newRunner(cfg *config.Config) *workflow.Runner {
	logger := newLogger()
	return &workflow.Runner{
		Cfg:  cfg,
		Diff: git.NewCollector(logger),
		Generate: func(ctx context.Context, systemPrompt, userContent string) ai.Result {
			return ai.Generate(ctx, &cfg.AI, logger, systemPrompt, userContent)
		},
		NewService: func(repoID string) workflow.PRService {
			return azdevops.NewClient(cfg.AzDevOps.OrgURL, cfg.AzDevOps.Project, repoID, cfg.AzDevOps.Token, logger)
		},
		Out:    os.Stdout,
		Logger: logger,
	}
}

// envPRID reads the pipeline-provided pull request id, returning 0 when it is
// unset or not a number.
func envPRID() int {
	id, err := strconv.Atoi(os.Getenv("SYSTEM_PULLREQUEST_PULLREQUESTID"))
	if err != nil {
		return 0
	}
	return id
}
