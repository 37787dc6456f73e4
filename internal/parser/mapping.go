package parser

import "github.com/gaugeworks/codegauge/internal/syntax"

// Kind tables translate grammar node kinds into the neutral set. Grammar
// kinds absent from a table are transparent during conversion.

var goKinds = map[string]syntax.Kind{
	"function_declaration":           syntax.KindFunction,
	"func_literal":                   syntax.KindLambda,
	"method_declaration":             syntax.KindMethod,
	"struct_type":                    syntax.KindClass,
	"interface_type":                 syntax.KindInterface,
	"field_declaration":              syntax.KindField,
	"parameter_declaration":          syntax.KindParameter,
	"variadic_parameter_declaration": syntax.KindParameter,
	"block":                          syntax.KindBlock,
	"if_statement":                   syntax.KindIf,
	"for_statement":                  syntax.KindLoop,
	"expression_switch_statement":    syntax.KindSwitch,
	"type_switch_statement":          syntax.KindSwitch,
	"select_statement":               syntax.KindSwitch,
	"expression_case":                syntax.KindCase,
	"type_case":                      syntax.KindCase,
	"communication_case":             syntax.KindCase,
	"default_case":                   syntax.KindCase,
	"return_statement":               syntax.KindReturn,
	"break_statement":                syntax.KindBreak,
	"continue_statement":             syntax.KindContinue,
	"call_expression":                syntax.KindCall,
	"assignment_statement":           syntax.KindAssignment,
	"short_var_declaration":          syntax.KindAssignment,
	"var_declaration":                syntax.KindVariable,
	"const_declaration":              syntax.KindVariable,
	"binary_expression":              syntax.KindBinaryOp,
	"unary_expression":               syntax.KindUnaryOp,
	"identifier":                     syntax.KindIdentifier,
	"field_identifier":               syntax.KindIdentifier,
	"type_identifier":                syntax.KindIdentifier,
	"interpreted_string_literal":     syntax.KindLiteral,
	"raw_string_literal":             syntax.KindLiteral,
	"int_literal":                    syntax.KindLiteral,
	"float_literal":                  syntax.KindLiteral,
	"rune_literal":                   syntax.KindLiteral,
	"true":                           syntax.KindLiteral,
	"false":                          syntax.KindLiteral,
	"nil":                            syntax.KindLiteral,
	"import_spec":                    syntax.KindImport,
	"comment":                        syntax.KindComment,
}

var pythonKinds = map[string]syntax.Kind{
	"function_definition":     syntax.KindFunction,
	"lambda":                  syntax.KindLambda,
	"class_definition":        syntax.KindClass,
	"typed_parameter":         syntax.KindParameter,
	"default_parameter":       syntax.KindParameter,
	"typed_default_parameter": syntax.KindParameter,
	"block":                   syntax.KindBlock,
	"if_statement":            syntax.KindIf,
	"conditional_expression":  syntax.KindTernary,
	"for_statement":           syntax.KindLoop,
	"while_statement":         syntax.KindLoop,
	"match_statement":         syntax.KindSwitch,
	"case_clause":             syntax.KindCase,
	"try_statement":           syntax.KindTry,
	"except_clause":           syntax.KindCatch,
	"finally_clause":          syntax.KindFinally,
	"raise_statement":         syntax.KindThrow,
	"return_statement":        syntax.KindReturn,
	"break_statement":         syntax.KindBreak,
	"continue_statement":      syntax.KindContinue,
	"call":                    syntax.KindCall,
	"assignment":              syntax.KindAssignment,
	"augmented_assignment":    syntax.KindAssignment,
	"boolean_operator":        syntax.KindBinaryOp,
	"binary_operator":         syntax.KindBinaryOp,
	"comparison_operator":     syntax.KindBinaryOp,
	"not_operator":            syntax.KindUnaryOp,
	"unary_operator":          syntax.KindUnaryOp,
	"identifier":              syntax.KindIdentifier,
	"string":                  syntax.KindLiteral,
	"integer":                 syntax.KindLiteral,
	"float":                   syntax.KindLiteral,
	"true":                    syntax.KindLiteral,
	"false":                   syntax.KindLiteral,
	"none":                    syntax.KindLiteral,
	"import_statement":        syntax.KindImport,
	"import_from_statement":   syntax.KindImport,
	"comment":                 syntax.KindComment,
}

var rustKinds = map[string]syntax.Kind{
	"function_item":            syntax.KindFunction,
	"closure_expression":       syntax.KindLambda,
	"struct_item":              syntax.KindClass,
	"enum_item":                syntax.KindClass,
	"trait_item":               syntax.KindInterface,
	"field_declaration":        syntax.KindField,
	"parameter":                syntax.KindParameter,
	"block":                    syntax.KindBlock,
	"if_expression":            syntax.KindIf,
	"loop_expression":          syntax.KindLoop,
	"while_expression":         syntax.KindLoop,
	"for_expression":           syntax.KindLoop,
	"match_expression":         syntax.KindSwitch,
	"match_arm":                syntax.KindCase,
	"return_expression":        syntax.KindReturn,
	"break_expression":         syntax.KindBreak,
	"continue_expression":      syntax.KindContinue,
	"call_expression":          syntax.KindCall,
	"macro_invocation":         syntax.KindCall,
	"assignment_expression":    syntax.KindAssignment,
	"compound_assignment_expr": syntax.KindAssignment,
	"let_declaration":          syntax.KindVariable,
	"binary_expression":        syntax.KindBinaryOp,
	"unary_expression":         syntax.KindUnaryOp,
	"identifier":               syntax.KindIdentifier,
	"field_identifier":         syntax.KindIdentifier,
	"type_identifier":          syntax.KindIdentifier,
	"string_literal":           syntax.KindLiteral,
	"raw_string_literal":       syntax.KindLiteral,
	"integer_literal":          syntax.KindLiteral,
	"float_literal":            syntax.KindLiteral,
	"char_literal":             syntax.KindLiteral,
	"boolean_literal":          syntax.KindLiteral,
	"use_declaration":          syntax.KindImport,
	"line_comment":             syntax.KindComment,
	"block_comment":            syntax.KindComment,
}

var typescriptKinds = map[string]syntax.Kind{
	"function_declaration":            syntax.KindFunction,
	"function_expression":             syntax.KindFunction,
	"generator_function_declaration":  syntax.KindFunction,
	"arrow_function":                  syntax.KindLambda,
	"method_definition":               syntax.KindMethod,
	"class_declaration":               syntax.KindClass,
	"class":                           syntax.KindClass,
	"interface_declaration":           syntax.KindInterface,
	"public_field_definition":         syntax.KindField,
	"property_signature":              syntax.KindField,
	"required_parameter":              syntax.KindParameter,
	"optional_parameter":              syntax.KindParameter,
	"statement_block":                 syntax.KindBlock,
	"if_statement":                    syntax.KindIf,
	"ternary_expression":              syntax.KindTernary,
	"for_statement":                   syntax.KindLoop,
	"for_in_statement":                syntax.KindLoop,
	"while_statement":                 syntax.KindLoop,
	"do_statement":                    syntax.KindLoop,
	"switch_statement":                syntax.KindSwitch,
	"switch_case":                     syntax.KindCase,
	"switch_default":                  syntax.KindCase,
	"try_statement":                   syntax.KindTry,
	"catch_clause":                    syntax.KindCatch,
	"finally_clause":                  syntax.KindFinally,
	"throw_statement":                 syntax.KindThrow,
	"return_statement":                syntax.KindReturn,
	"break_statement":                 syntax.KindBreak,
	"continue_statement":              syntax.KindContinue,
	"call_expression":                 syntax.KindCall,
	"new_expression":                  syntax.KindCall,
	"assignment_expression":           syntax.KindAssignment,
	"augmented_assignment_expression": syntax.KindAssignment,
	"variable_declarator":             syntax.KindAssignment,
	"binary_expression":               syntax.KindBinaryOp,
	"unary_expression":                syntax.KindUnaryOp,
	"identifier":                      syntax.KindIdentifier,
	"property_identifier":             syntax.KindIdentifier,
	"string":                          syntax.KindLiteral,
	"template_string":                 syntax.KindLiteral,
	"number":                          syntax.KindLiteral,
	"true":                            syntax.KindLiteral,
	"false":                           syntax.KindLiteral,
	"null":                            syntax.KindLiteral,
	"import_statement":                syntax.KindImport,
	"comment":                         syntax.KindComment,
}
