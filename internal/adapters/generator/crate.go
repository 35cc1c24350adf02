package generator

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/same-cargo/internal/core/domain"
)

const (
	crateVersion = "0.1.0"
	crateEdition = "2021"
)

type crateFile struct {
	path string
	data []byte
}

// crateFiles returns the manifest and entry point of a minimal cargo package
// named name. Applications get src/main.rs, libraries src/lib.rs.
func crateFiles(name string, kind domain.ProjectKind) []crateFile {
	manifest := fmt.Sprintf(`[package]
name = %q
version = %q
edition = %q

[dependencies]
`, name, crateVersion, crateEdition)

	files := []crateFile{{path: "Cargo.toml", data: []byte(manifest)}}
	if kind == domain.KindLibrary {
		return append(files, crateFile{path: filepath.Join("src", "lib.rs"), data: []byte(libSource)})
	}
	return append(files, crateFile{path: filepath.Join("src", "main.rs"), data: []byte(fmt.Sprintf(mainSource, name))})
}

const mainSource = `fn main() {
    println!("Hello from %s!");
}
`

const libSource = `pub fn add(left: u64, right: u64) -> u64 {
    left + right
}

#[cfg(test)]
mod tests {
    use super::*;

    #[test]
    fn it_works() {
        assert_eq!(add(2, 2), 4);
    }
}
`
