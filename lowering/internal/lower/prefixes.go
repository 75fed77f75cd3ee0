package lower

// Name prefixes for synthesized callables and loop helpers. Every name is
// minted through uniquename, so the prefixes only aid readability of the
// generated source. Nothing dispatches on them: control-flow bodies carry an
// explicit ast.Role instead.
const (
	TrueFuncPrefix  = "true_fn"
	FalseFuncPrefix = "false_fn"

	WhileConditionPrefix = "while_condition"
	WhileBodyPrefix      = "while_body"
	ForConditionPrefix   = "for_loop_condition"
	ForBodyPrefix        = "for_loop_body"

	ForIterIndexPrefix      = "__for_loop_var_index"
	ForIterTuplePrefix      = "__for_loop_iter_tuple"
	ForIterTargetPrefix     = "__for_loop_iter_target"
	ForIterIteratorPrefix   = "__for_loop_iter_iterator"
	ForIterTupleIndexPrefix = "__for_loop_iter_tuple_index"
	ForIterVarLenPrefix     = "__for_loop_var_len"
	ForIterVarNamePrefix    = "__for_loop_iter_var"
	ForIterZipToListPrefix  = "__for_loop_iter_zip"
)

// Runtime helper names the generated source calls into.
const (
	RuntimeIfElse    = "_gl.convert_ifelse"
	RuntimeWhile     = "_gl.convert_while"
	RuntimeUndefined = "_gl.undefined_var"
)
