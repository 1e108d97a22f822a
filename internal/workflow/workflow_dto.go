package workflow

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Note     string `json:"note" binding:"max=1000"`
}
