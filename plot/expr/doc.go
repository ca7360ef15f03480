// Package expr implements the arithmetic expressions used by plot blueprints.
//
// Expressions are parsed into a small AST and evaluated against an immutable
// name table (Scope) plus the optional sweep variables x and y. Only numbers,
// identifiers, + - * / ** (or ^), unary signs, parentheses and calls into a
// fixed math library are supported.
package expr
