package domain

// Result is the uniform outcome shape consumed by the UI layer: a success
// flag plus a user-visible message. Every failure is scoped to a single
// intent, nothing here is fatal to the process.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
