// Package clair parses Clair, a small French-keyword scripting language, into
// an abstract syntax tree. The parser consumes tokens produced by an external
// lexer and supports:
//   - Variable declarations via `soit name = expr` and `montre` print statements.
//   - Control flow with `si`/`sinon`, `tantque` and `pour chaque x dans liste`.
//   - Functions (`fonction`), `renvoie`, and classes with single inheritance
//     (`herite de`), `prive`/`public` members and the `abstrait` marker.
//   - Interfaces, `essaye`/`attrape`/`enfin`, `lance` and `inclure "chemin"`.
//   - Expressions with the usual precedence ladder, calls, `nouveau`, indexed
//     access `objet[cle]`, and JSON-like list and object literals.
//
// Parsing fails fast: the first grammar violation aborts the parse with a
// *SyntaxError whose message reads `[Ligne N] ...`.
package clair
