package httpapi

// Result is the uniform response envelope:
// - success: true | false
// - message: human-readable outcome
// - data: payload on success
// - errors: accumulated validation messages on 400
type Result struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

func OkMessage(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

func FailWith(message string, errs []string) Result {
	return Result{Success: false, Message: message, Errors: errs}
}
