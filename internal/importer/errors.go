package importer

// ValidationError reports a missing required field or a malformed numeric
// field in one row. Row-local: it fails the row, never the import.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a reference entity name that did not resolve.
// Row-local, same as ValidationError.
type NotFoundError struct {
	Entity  string
	Name    string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// HeaderError reports a malformed CSV header row. It is raised before the
// import transaction opens and maps to a 400 response.
type HeaderError struct {
	Message string
}

func (e *HeaderError) Error() string {
	return e.Message
}
