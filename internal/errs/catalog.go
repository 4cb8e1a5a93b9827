// Package errs implements abaci's fatal error kinds and their pretty
// formatting (spec §7), grounded on the teacher's internal/errors package
// (position-carrying CompilerError, file/line/caret rendering) and
// internal/interp/errors/catalog.go's fixed-kind enumeration.
package errs

// Kind enumerates every logic, internal, and runtime error abaci can raise.
// All are fatal to the current submission (spec §7).
type Kind string

const (
	// Logic errors (static, detected by the type pass).
	VariableExists       Kind = "VariableExists"
	VariableNotExist     Kind = "VariableNotExist"
	VariableType         Kind = "VariableType"
	NoConstantAssign     Kind = "NoConstantAssign"
	BadOperatorForType    Kind = "BadOperatorForType"
	BadConvType          Kind = "BadConvType"
	BadConvTarget        Kind = "BadConvTarget"
	BadObject            Kind = "BadObject"
	IndexNotInt          Kind = "IndexNotInt"
	TooManyIndexes       Kind = "TooManyIndexes"
	ListTypeMismatch     Kind = "ListTypeMismatch"
	ListAssignMismatch   Kind = "ListAssignMismatch"
	FunctionTypeSet      Kind = "FunctionTypeSet"
	WrongArgs            Kind = "WrongArgs"
	CallableNotExist     Kind = "CallableNotExist"
	ClassExists          Kind = "ClassExists"
	FunctionExists       Kind = "FunctionExists"
	ReturnAtEnd          Kind = "ReturnAtEnd"
	ReturnOnlyInFunction Kind = "ReturnOnlyInFunction"
	FunctionTopLevel     Kind = "FunctionTopLevel"
	EmptyListNeedsType   Kind = "EmptyListNeedsType"
	BadLibrary           Kind = "BadLibrary"
	BadNativeFn          Kind = "BadNativeFn"

	// Compiler internal inconsistency: should be unreachable for
	// well-formed inputs (spec §7).
	InternalInconsistency Kind = "InternalInconsistency"

	// Runtime errors.
	IndexOutOfRange Kind = "IndexOutOfRange"
	BadString       Kind = "BadString"

	// Parse error.
	ParseError Kind = "ParseError"
)
