package cargo

// NormalizeProjectName returns the identifier under which a generated project
// is stored. It returns candidate unchanged: kebab-case, snake_case,
// PascalCase and camelCase names are all persisted exactly as typed and later
// surface verbatim as the --bin / -p value.
//
// Keep this the only place project names pass through on their way to disk;
// casing rules must not be added here or anywhere else in the generator.
func NormalizeProjectName(candidate string) string {
	return candidate
}
