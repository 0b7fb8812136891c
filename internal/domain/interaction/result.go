package interaction

import "fmt"

// Result is the uniform envelope returned by every handler and by the
// dispatcher.
type Result struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    map[string]any   `json:"data,omitempty"`
	Effects []map[string]any `json:"effects,omitempty"`
}

func Succeed(message string, data map[string]any) Result {
	return Result{Success: true, Message: message, Data: data}
}

func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

func Failf(format string, args ...any) Result {
	return Fail(fmt.Sprintf(format, args...))
}

func FailWithData(message string, data map[string]any) Result {
	return Result{Success: false, Message: message, Data: data}
}

// WithEffects attaches effect descriptors to r.
func (r Result) WithEffects(effects ...map[string]any) Result {
	if len(effects) == 0 {
		return r
	}
	r.Effects = append(r.Effects, effects...)
	return r
}
