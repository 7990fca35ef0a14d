package workflow

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prflight/prflight/pkg/ai"
	"github.com/prflight/prflight/pkg/azdevops"
	"github.com/prflight/prflight/pkg/config"
	pferrors "github.com/prflight/prflight/pkg/errors"
	"github.com/prflight/prflight/pkg/git"
)

type fakeDiff struct {
	bundle  git.Bundle
	remote  string
	pushed  []string
	pushErr error
}

func (f *fakeDiff) Collect(source, target string) git.Bundle {
	b := f.bundle
	b.RangeSpec = target + "..." + source
	return b
}

func (f *fakeDiff) Push(branch string) error {
	f.pushed = append(f.pushed, branch)
	return f.pushErr
}

func (f *fakeDiff) RemoteURL() string { return f.remote }

type fakeService struct {
	azdevops.Client

	created         *azdevops.PRInfo
	createErr       error
	comments        []string
	commentErr      error
	updates         []string
	updateSkip      bool
	updateErr       error
	createTitles    []string
	lastDescription string
}

func (f *fakeService) CreatePR(ctx context.Context, source, target, title, description string) (*azdevops.PRInfo, error) {
	f.createTitles = append(f.createTitles, title)
	f.lastDescription = description
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created == nil {
		f.created = &azdevops.PRInfo{ID: 1}
	}
	return f.created, nil
}

func (f *fakeService) PostComment(ctx context.Context, prID int, content string) error {
	f.comments = append(f.comments, content)
	return f.commentErr
}

func (f *fakeService) UpdateDescriptionIfAbsent(ctx context.Context, prID int, generated string) (bool, error) {
	f.updates = append(f.updates, generated)
	return f.updateSkip, f.updateErr
}

func newRunner(diff *fakeDiff, svc PRService, gen Generator, cfg *config.Config) (*Runner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Runner{
		Cfg:        cfg,
		Diff:       diff,
		Generate:   gen,
		NewService: func(string) PRService { return svc },
		Out:        out,
	}, out
}

func fullContext() *config.Config {
	return &config.Config{
		AzDevOps: config.AzDevOpsConfig{
			OrgURL:  "https://dev.azure.com/org",
			Project: "proj",
			RepoID:  "repo",
			Token:   "tok",
		},
	}
}

func okGenerator(text string) Generator {
	return func(ctx context.Context, system, user string) ai.Result {
		return ai.Result{Text: text}
	}
}

func skippedGenerator(reason string) Generator {
	return func(ctx context.Context, system, user string) ai.Result {
		return ai.Result{Skipped: true, Reason: reason}
	}
}

func TestReviewNoDiffShortCircuits(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "   \n"}}
	generated := false
	r, out := newRunner(diff, &fakeService{}, func(ctx context.Context, s, u string) ai.Result {
		generated = true
		return ai.Result{Text: "x"}
	}, fullContext())

	if err := r.Review(context.Background(), ReviewOptions{Source: "f", Target: "main"}); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if generated {
		t.Error("no diff must short-circuit before the AI call")
	}
	if !strings.Contains(out.String(), "No diff found; skipping.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReviewSkippedGenerationIsFatal(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	r, _ := newRunner(diff, &fakeService{}, skippedGenerator("no API key"), fullContext())

	err := r.Review(context.Background(), ReviewOptions{Source: "f", Target: "main", PRID: 3})
	if err == nil {
		t.Fatal("expected error when review generation is skipped")
	}
	if !pferrors.IsWorkflowError(err) {
		t.Errorf("error type = %T, want WorkflowError", err)
	}
}

func TestReviewMissingContextPrintsOnly(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added", Files: []string{"a.go"}}}
	svc := &fakeService{}
	cfg := &config.Config{} // no service context
	r, out := newRunner(diff, svc, okGenerator("the review"), cfg)

	if err := r.Review(context.Background(), ReviewOptions{Source: "f", Target: "main", PRID: 3}); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if len(svc.comments) != 0 {
		t.Error("no comment must be posted without service context")
	}
	if !strings.Contains(out.String(), "the review") {
		t.Error("review text must still be printed")
	}
	if !strings.Contains(out.String(), "Missing Azure DevOps context or token; printing output only.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReviewPostsCommentWithPrefix(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	svc := &fakeService{}
	r, out := newRunner(diff, svc, okGenerator("findings"), fullContext())

	if err := r.Review(context.Background(), ReviewOptions{Source: "f", Target: "main", PRID: 3}); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if len(svc.comments) != 1 || svc.comments[0] != "## AI Code Review\n\nfindings" {
		t.Errorf("comments = %q", svc.comments)
	}
	if !strings.Contains(out.String(), "Posted PR comment.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReviewCommentFailureContinues(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	svc := &fakeService{commentErr: pferrors.NewDevOpsError("PostComment", "boom")}
	r, out := newRunner(diff, svc, okGenerator("findings"), fullContext())

	err := r.Review(context.Background(), ReviewOptions{
		Source: "f", Target: "main", PRID: 3, UpdateDescription: true,
	})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if !strings.Contains(out.String(), "Failed to post PR comment:") {
		t.Errorf("output = %q", out.String())
	}
	if len(svc.updates) != 1 {
		t.Error("description update must still run after a comment failure")
	}
}

func TestReviewUpdateSkippedOnSentinel(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	svc := &fakeService{updateSkip: true}
	r, out := newRunner(diff, svc, okGenerator("findings"), fullContext())

	err := r.Review(context.Background(), ReviewOptions{
		Source: "f", Target: "main", PRID: 3, UpdateDescription: true,
	})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if !strings.Contains(out.String(), "already contains AI section") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReviewDryRunPreviewsWithoutCalls(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	svc := &fakeService{}
	r, out := newRunner(diff, svc, okGenerator("findings"), fullContext())

	err := r.Review(context.Background(), ReviewOptions{
		Source: "f", Target: "main", PRID: 3, UpdateDescription: true, DryRun: true,
	})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if len(svc.comments) != 0 || len(svc.updates) != 0 {
		t.Error("dry run must not call the service")
	}
	if !strings.Contains(out.String(), "Dry run enabled; skipping PR comment/update calls.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCreateNoDiffUsesFallbackDescription(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{}}
	svc := &fakeService{created: &azdevops.PRInfo{ID: 9, URL: "https://example/pr/9"}}
	generated := false
	r, out := newRunner(diff, svc, func(ctx context.Context, s, u string) ai.Result {
		generated = true
		return ai.Result{Text: "x"}
	}, fullContext())

	if err := r.Create(context.Background(), CreateOptions{Source: "feature/x", Target: "main"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if generated {
		t.Error("no diff must short-circuit before the AI call")
	}
	if svc.lastDescription != FallbackNoDiffDescription {
		t.Errorf("description = %q", svc.lastDescription)
	}
	if !strings.Contains(out.String(), "Created PR #9: feature/x into main") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCreateSkippedGenerationFallsBack(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	svc := &fakeService{}
	r, _ := newRunner(diff, svc, skippedGenerator("no API key"), fullContext())

	if err := r.Create(context.Background(), CreateOptions{Source: "f", Target: "main"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if svc.lastDescription != FallbackFailedDescription {
		t.Errorf("description = %q", svc.lastDescription)
	}
}

func TestCreateMissingContextIsFatal(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	svc := &fakeService{}
	r, out := newRunner(diff, svc, okGenerator("desc"), &config.Config{})

	err := r.Create(context.Background(), CreateOptions{Source: "f", Target: "main"})
	if err == nil {
		t.Fatal("expected error without service context")
	}
	if !pferrors.IsWorkflowError(err) {
		t.Errorf("error type = %T, want WorkflowError", err)
	}
	if !strings.Contains(out.String(), "desc") {
		t.Error("generated description must still be printed")
	}
}

func TestCreateDryRunSkipsContextCheck(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	svc := &fakeService{}
	r, out := newRunner(diff, svc, okGenerator("desc"), &config.Config{})

	err := r.Create(context.Background(), CreateOptions{Source: "f", Target: "main", DryRun: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(svc.createTitles) != 0 {
		t.Error("dry run must not create a PR")
	}
	if !strings.Contains(out.String(), "Dry run enabled; skipping PR creation.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCreatePushesWhenRequested(t *testing.T) {
	diff := &fakeDiff{bundle: git.Bundle{Diff: "+added"}}
	r, _ := newRunner(diff, &fakeService{}, okGenerator("desc"), fullContext())

	if err := r.Create(context.Background(), CreateOptions{Source: "feature/x", Target: "main", Push: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(diff.pushed) != 1 || diff.pushed[0] != "feature/x" {
		t.Errorf("pushed = %v", diff.pushed)
	}
}

func TestCreatePushFailureIsFatal(t *testing.T) {
	diff := &fakeDiff{
		bundle:  git.Bundle{Diff: "+added"},
		pushErr: pferrors.NewWorkflowError("push", "rejected"),
	}
	r, _ := newRunner(diff, &fakeService{}, okGenerator("desc"), fullContext())

	err := r.Create(context.Background(), CreateOptions{Source: "f", Target: "main", Push: true})
	if err == nil {
		t.Fatal("expected push failure to abort the flow")
	}
}

func TestCreateInfersRepoID(t *testing.T) {
	diff := &fakeDiff{
		bundle: git.Bundle{Diff: "+added"},
		remote: "https://dev.azure.com/org/proj/_git/inferred-repo",
	}
	cfg := fullContext()
	cfg.AzDevOps.RepoID = ""

	var gotRepoID string
	out := &bytes.Buffer{}
	svc := &fakeService{}
	r := &Runner{
		Cfg:      cfg,
		Diff:     diff,
		Generate: okGenerator("desc"),
		NewService: func(repoID string) PRService {
			gotRepoID = repoID
			return svc
		},
		Out: out,
	}

	if err := r.Create(context.Background(), CreateOptions{Source: "f", Target: "main"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotRepoID != "inferred-repo" {
		t.Errorf("repoID = %q, want inferred-repo", gotRepoID)
	}
	if !strings.Contains(out.String(), "Inferred repo-id from git origin: inferred-repo") {
		t.Errorf("output = %q", out.String())
	}
}

func TestDefaultTitle(t *testing.T) {
	if got := DefaultTitle("feature/x", "main"); got != "feature/x into main" {
		t.Errorf("DefaultTitle = %q", got)
	}
	if got := DefaultTitle("origin/feature/x", "refs/heads/main"); got != "feature/x into main" {
		t.Errorf("DefaultTitle = %q", got)
	}
}

func TestUserContent(t *testing.T) {
	bundle := git.Bundle{
		Files:     []string{"a.go", "b.go"},
		Diff:      "+added",
		RangeSpec: "main...feature/x",
	}
	got := UserContent(bundle)
	want := "Git range: main...feature/x\n\nFiles changed:\na.go\nb.go\n\nDiff:\n+added"
	if got != want {
		t.Errorf("UserContent = %q, want %q", got, want)
	}
}
