// Package convert turns YAML (or JSON) data files into the compact JSON the
// website loads at runtime, including the yearly finance expense tables.
package convert
