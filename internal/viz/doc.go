// Package viz renders assembled matrices and gradient checks in the
// terminal.
//
//   - [RenderSparsity]: nonzero pattern of a dense matrix, one cell per entry
//   - [RenderResults] and [PlotErrors]: gradient-check table and error chart
//   - [Inspector]: Bubble Tea model that pages through Jacobian row blocks
//
// # Inspector Key Bindings
//
//	↑/↓ k/j - Previous/next joint
//	←/→ h/l - Previous/next articulation
//	M       - Toggle Jacobian / mass view
//	T       - Cycle color themes
//	Q       - Quit
package viz
