package domain

// ActionResult is what a cart mutation reports back to the views.
type ActionResult struct {
	Success bool
	Message string
}

func Succeeded(message string) ActionResult {
	return ActionResult{Success: true, Message: message}
}

func Failed(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}
