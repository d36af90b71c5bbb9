// Package formats provides parsers for 3D geometry file formats.
package formats
