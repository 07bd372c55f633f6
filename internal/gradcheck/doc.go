// Package gradcheck compares every adjoint in spatial and articulation
// against central finite differences of the matching forward function.
//
// Each Case contracts the forward output with fixed random weights w, so
// the scalar loss L(x) = <w, f(x)> has gradient adj_f(x, w). Check
// evaluates both and reports the largest disagreement.
package gradcheck
