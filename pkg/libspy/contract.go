// Package libspy models the C-ABI contract that the libspy runtime exposes
// to interpreted and redshifted code, per spec.md §6.2. It does not
// implement libspy (that is an external C library); it only names the
// entry points so that pkg/ops can resolve operators to concrete FQNs and
// pkg/doppler's CheckResidual can assert that every residual arithmetic
// node (an "operator::" or "str::" FQN) names a real contract entry.
package libspy

// Signature describes one libspy entry point: its FQN, the types of its
// parameters (named informally, by spec.md's own vocabulary: "i8","i32",
// "f64","str","ptr","void","bool"), and its result type.
type Signature struct {
	FQN    string
	Params []string
	Result string
	Notes  string
}

// Table is the static FQN -> Signature map for every libspy entry point
// named in spec.md §6.2.
var Table = map[string]Signature{
	"str::alloc": {
		FQN: "str::alloc", Params: []string{"i32"}, Result: "str",
		Notes: "allocate a string buffer of the given byte length",
	},
	"str::add": {
		FQN: "str::add", Params: []string{"str", "str"}, Result: "str",
		Notes: "concatenation",
	},
	"str::mul": {
		FQN: "str::mul", Params: []string{"str", "i32"}, Result: "str",
		Notes: "repetition; negative counts produce the empty string",
	},
	"str::eq": {
		FQN: "str::eq", Params: []string{"str", "str"}, Result: "bool",
	},
	"str::ne": {
		FQN: "str::ne", Params: []string{"str", "str"}, Result: "bool",
	},
	"str::getitem": {
		FQN: "str::getitem", Params: []string{"str", "i32"}, Result: "str",
		Notes: "single-character substring; panics out of bounds",
	},
	"str::len": {
		FQN: "str::len", Params: []string{"str"}, Result: "i32",
	},
	"str::hash": {
		FQN: "str::hash", Params: []string{"str"}, Result: "i32",
		Notes: "stable hash; never 0",
	},
	"operator::i8_div":      {FQN: "operator::i8_div", Params: []string{"i8", "i8"}, Result: "f64", Notes: "true division; promotes to f64, panics on divide-by-zero"},
	"operator::i8_mod":      {FQN: "operator::i8_mod", Params: []string{"i8", "i8"}, Result: "i8", Notes: "sign of divisor, per floor-division identity"},
	"operator::i8_floordiv": {FQN: "operator::i8_floordiv", Params: []string{"i8", "i8"}, Result: "i8"},
	"operator::i8_add":      {FQN: "operator::i8_add", Params: []string{"i8", "i8"}, Result: "i8"},
	"operator::i8_sub":      {FQN: "operator::i8_sub", Params: []string{"i8", "i8"}, Result: "i8"},
	"operator::i8_mul":      {FQN: "operator::i8_mul", Params: []string{"i8", "i8"}, Result: "i8"},
	"operator::i8_eq":       {FQN: "operator::i8_eq", Params: []string{"i8", "i8"}, Result: "bool"},
	"operator::i8_ne":       {FQN: "operator::i8_ne", Params: []string{"i8", "i8"}, Result: "bool"},
	"operator::i8_lt":       {FQN: "operator::i8_lt", Params: []string{"i8", "i8"}, Result: "bool"},
	"operator::i8_le":       {FQN: "operator::i8_le", Params: []string{"i8", "i8"}, Result: "bool"},
	"operator::i8_gt":       {FQN: "operator::i8_gt", Params: []string{"i8", "i8"}, Result: "bool"},
	"operator::i8_ge":       {FQN: "operator::i8_ge", Params: []string{"i8", "i8"}, Result: "bool"},
	"operator::i8_neg":      {FQN: "operator::i8_neg", Params: []string{"i8"}, Result: "i8"},
	"operator::f64_to_i8":   {FQN: "operator::f64_to_i8", Params: []string{"f64"}, Result: "i8", Notes: "saturating conversion; NaN saturates to 0"},
	"operator::i32_div":      {FQN: "operator::i32_div", Params: []string{"i32", "i32"}, Result: "f64", Notes: "true division; promotes to f64, panics on divide-by-zero"},
	"operator::i32_mod":      {FQN: "operator::i32_mod", Params: []string{"i32", "i32"}, Result: "i32", Notes: "sign of divisor, per floor-division identity"},
	"operator::i32_floordiv": {FQN: "operator::i32_floordiv", Params: []string{"i32", "i32"}, Result: "i32"},
	"operator::i32_add":      {FQN: "operator::i32_add", Params: []string{"i32", "i32"}, Result: "i32"},
	"operator::i32_sub":      {FQN: "operator::i32_sub", Params: []string{"i32", "i32"}, Result: "i32"},
	"operator::i32_mul":      {FQN: "operator::i32_mul", Params: []string{"i32", "i32"}, Result: "i32"},
	"operator::i32_eq":       {FQN: "operator::i32_eq", Params: []string{"i32", "i32"}, Result: "bool"},
	"operator::i32_ne":       {FQN: "operator::i32_ne", Params: []string{"i32", "i32"}, Result: "bool"},
	"operator::i32_lt":       {FQN: "operator::i32_lt", Params: []string{"i32", "i32"}, Result: "bool"},
	"operator::i32_le":       {FQN: "operator::i32_le", Params: []string{"i32", "i32"}, Result: "bool"},
	"operator::i32_gt":       {FQN: "operator::i32_gt", Params: []string{"i32", "i32"}, Result: "bool"},
	"operator::i32_ge":       {FQN: "operator::i32_ge", Params: []string{"i32", "i32"}, Result: "bool"},
	"operator::i32_neg":      {FQN: "operator::i32_neg", Params: []string{"i32"}, Result: "i32"},
	"operator::f64_to_i32":   {FQN: "operator::f64_to_i32", Params: []string{"f64"}, Result: "i32", Notes: "saturating conversion; NaN saturates to 0"},
	"operator::f64_div":      {FQN: "operator::f64_div", Params: []string{"f64", "f64"}, Result: "f64", Notes: "IEEE 754 division; inf/nan on divide-by-zero, no panic"},
	"operator::f64_floordiv": {FQN: "operator::f64_floordiv", Params: []string{"f64", "f64"}, Result: "f64"},
	"operator::f64_mod":      {FQN: "operator::f64_mod", Params: []string{"f64", "f64"}, Result: "f64", Notes: "sign of divisor"},
	"operator::f64_add":      {FQN: "operator::f64_add", Params: []string{"f64", "f64"}, Result: "f64"},
	"operator::f64_sub":      {FQN: "operator::f64_sub", Params: []string{"f64", "f64"}, Result: "f64"},
	"operator::f64_mul":      {FQN: "operator::f64_mul", Params: []string{"f64", "f64"}, Result: "f64"},
	"operator::f64_eq":       {FQN: "operator::f64_eq", Params: []string{"f64", "f64"}, Result: "bool"},
	"operator::f64_ne":       {FQN: "operator::f64_ne", Params: []string{"f64", "f64"}, Result: "bool"},
	"operator::f64_lt":       {FQN: "operator::f64_lt", Params: []string{"f64", "f64"}, Result: "bool"},
	"operator::f64_le":       {FQN: "operator::f64_le", Params: []string{"f64", "f64"}, Result: "bool"},
	"operator::f64_gt":       {FQN: "operator::f64_gt", Params: []string{"f64", "f64"}, Result: "bool"},
	"operator::f64_ge":       {FQN: "operator::f64_ge", Params: []string{"f64", "f64"}, Result: "bool"},
	"operator::f64_neg":      {FQN: "operator::f64_neg", Params: []string{"f64"}, Result: "f64"},
	"operator::bool_eq":  {FQN: "operator::bool_eq", Params: []string{"bool", "bool"}, Result: "bool"},
	"operator::bool_ne":  {FQN: "operator::bool_ne", Params: []string{"bool", "bool"}, Result: "bool"},
	"operator::bool_not": {FQN: "operator::bool_not", Params: []string{"bool"}, Result: "bool"},
	"operator::raise": {
		FQN: "operator::raise", Params: []string{"ptr"}, Result: "void",
		Notes: "transfers control to the panic handler with the given exception object",
	},
	"gc_alloc": {
		FQN: "gc_alloc", Params: []string{"i32"}, Result: "ptr",
		Notes: "allocate GC-managed, zeroed memory of the given byte length; contract only, no GC is implemented here (see Open Question in DESIGN.md)",
	},
	"raw_alloc": {
		FQN: "raw_alloc", Params: []string{"i32"}, Result: "ptr",
		Notes: "allocate unmanaged, zeroed memory of the given byte length; contract only",
	},
	"print_i32":  {FQN: "print_i32", Params: []string{"i32"}, Result: "void"},
	"print_i8":   {FQN: "print_i8", Params: []string{"i8"}, Result: "void"},
	"print_f64":  {FQN: "print_f64", Params: []string{"f64"}, Result: "void"},
	"print_bool": {FQN: "print_bool", Params: []string{"bool"}, Result: "void"},
	"print_str":  {FQN: "print_str", Params: []string{"str"}, Result: "void"},
}

// Lookup returns the signature for a libspy/operator FQN.
func Lookup(fqn string) (Signature, bool) {
	sig, ok := Table[fqn]
	return sig, ok
}
