package azdevops

// PRInfo is the subset of the pull request resource the tool reads back.
type PRInfo struct {
	ID          int    `json:"pullRequestId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	URL         string `json:"url"`
}

// createPRRequest is the body for pull request creation.
type createPRRequest struct {
	SourceRefName string `json:"sourceRefName"`
	TargetRefName string `json:"targetRefName"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}

// threadRequest is the body for posting a new comment thread.
type threadRequest struct {
	Comments []threadComment `json:"comments"`
	Status   int             `json:"status"`
}

// threadComment is a single comment in a thread.
type threadComment struct {
	ParentCommentID int    `json:"parentCommentId"`
	Content         string `json:"content"`
	CommentType     int    `json:"commentType"`
}

// updateDescriptionRequest is the body for patching the PR description.
type updateDescriptionRequest struct {
	Description string `json:"description"`
}
