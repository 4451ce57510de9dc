package ui

// Progress creates progress indicators bound to one output stream.
type Progress interface {
	// Start creates a determinate progress bar with the given total.
	Start(title string, total int) ProgressBar

	// Spinner creates an indeterminate spinner.
	Spinner(title string) Spinner
}

// ProgressBar tracks a known amount of work.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// Spinner shows that a long operation is running. Stop prints msg as the
// final line, marked as a success when ok is true and as a failure otherwise.
type Spinner interface {
	SetTitle(title string)
	Stop(ok bool, msg string)
}
