package callgen

import (
	"math"
	"strconv"
	"strings"

	"github.com/broady/callgen/api"
	"github.com/broady/callgen/rawvalue"
)

const (
	numRawKinds   = int(rawvalue.KindNull) + 1
	numParamTypes = int(api.TypeNumber) + 1
)

// coercion carries what a conversion needs besides the raw value.
type coercion struct {
	param api.Param
	opts  Options
}

// coerceFunc converts one raw value into a literal of the declared type.
type coerceFunc func(c coercion, v rawvalue.Value) (Literal, error)

// coercions is the conversion table, indexed by raw value kind then declared
// type. Every cell is set; TestCoercionTableComplete keeps it that way.
var coercions = [numRawKinds][numParamTypes]coerceFunc{
	rawvalue.KindString: {
		api.TypeString:  stringPassThrough,
		api.TypeEnum:    stringToEnum,
		api.TypeList:    stringToList,
		api.TypeBoolean: stringToBool,
		api.TypeInteger: stringToInt32,
		api.TypeLong:    stringToInt64,
		api.TypeFloat:   stringToFloat32,
		api.TypeDouble:  stringToFloat64,
		api.TypeNumber:  stringToInt32,
	},
	rawvalue.KindBool: {
		api.TypeString:  boolPassThrough,
		api.TypeEnum:    boolToEnum,
		api.TypeList:    boolToList,
		api.TypeBoolean: boolPassThrough,
		api.TypeInteger: boolPassThrough,
		api.TypeLong:    boolPassThrough,
		api.TypeFloat:   boolPassThrough,
		api.TypeDouble:  boolPassThrough,
		api.TypeNumber:  boolPassThrough,
	},
	rawvalue.KindInt: {
		api.TypeString:  intToString,
		api.TypeEnum:    mismatch,
		api.TypeList:    mismatch,
		api.TypeBoolean: mismatch,
		api.TypeInteger: intToInt32,
		api.TypeLong:    intToInt64,
		api.TypeFloat:   intToFloat32,
		api.TypeDouble:  intToFloat64,
		api.TypeNumber:  intToInt32,
	},
	rawvalue.KindFloat: {
		api.TypeString:  floatToString,
		api.TypeEnum:    mismatch,
		api.TypeList:    mismatch,
		api.TypeBoolean: mismatch,
		api.TypeInteger: mismatch,
		api.TypeLong:    mismatch,
		api.TypeFloat:   floatToFloat32,
		api.TypeDouble:  floatToFloat64,
		api.TypeNumber:  floatToFloat64,
	},
	rawvalue.KindSequence: {
		api.TypeString:  sequenceToString,
		api.TypeEnum:    sequenceToEnums,
		api.TypeList:    sequenceToList,
		api.TypeBoolean: mismatch,
		api.TypeInteger: mismatch,
		api.TypeLong:    mismatch,
		api.TypeFloat:   mismatch,
		api.TypeDouble:  mismatch,
		api.TypeNumber:  mismatch,
	},
	rawvalue.KindMapping: {
		api.TypeString:  unsupportedShape,
		api.TypeEnum:    unsupportedShape,
		api.TypeList:    unsupportedShape,
		api.TypeBoolean: unsupportedShape,
		api.TypeInteger: unsupportedShape,
		api.TypeLong:    unsupportedShape,
		api.TypeFloat:   unsupportedShape,
		api.TypeDouble:  unsupportedShape,
		api.TypeNumber:  unsupportedShape,
	},
	rawvalue.KindNull: {
		api.TypeString:  unsupportedShape,
		api.TypeEnum:    unsupportedShape,
		api.TypeList:    unsupportedShape,
		api.TypeBoolean: unsupportedShape,
		api.TypeInteger: unsupportedShape,
		api.TypeLong:    unsupportedShape,
		api.TypeFloat:   unsupportedShape,
		api.TypeDouble:  unsupportedShape,
		api.TypeNumber:  unsupportedShape,
	},
}

// coerce converts v to a literal of param's declared type.
func coerce(param api.Param, v rawvalue.Value, opts Options) (Literal, error) {
	k, t := int(v.Kind()), int(param.Type)
	if k < 0 || k >= numRawKinds || t < 0 || t >= numParamTypes {
		return nil, Errorf(CodeTypeCoercionFailure, "%s: cannot convert %s to %s", param.Name, v.Kind(), param.Type)
	}
	return coercions[k][t](coercion{param: param, opts: opts}, v)
}

func mismatch(c coercion, v rawvalue.Value) (Literal, error) {
	return nil, c.fail("cannot convert %s %#v to %s", v.Kind(), v, c.param.Type)
}

func unsupportedShape(c coercion, v rawvalue.Value) (Literal, error) {
	return nil, Errorf(CodeUnsupportedValueShape, "%s: %s values are not supported for %s parameters",
		c.param.Name, v.Kind(), c.param.Type).
		WithDetail("param", c.param.Name)
}

func (c coercion) fail(format string, args ...any) *Error {
	return Errorf(CodeTypeCoercionFailure, c.param.Name+": "+format, args...).
		WithDetail("param", c.param.Name).
		WithDetail("type", c.param.Type.String())
}

// Strings

func stringPassThrough(_ coercion, v rawvalue.Value) (Literal, error) {
	return Str(v.Str()), nil
}

func stringToEnum(c coercion, v rawvalue.Value) (Literal, error) {
	s := v.Str()
	if c.opts.isListEnum(c.param.Name) {
		return enumList(c, strings.Split(s, ","))
	}
	return c.enum(s)
}

func stringToList(_ coercion, v rawvalue.Value) (Literal, error) {
	pieces := strings.Split(v.Str(), ",")
	elems := make([]Literal, len(pieces))
	for i, p := range pieces {
		elems[i] = Str(p)
	}
	return List(elems...), nil
}

func stringToBool(c coercion, v rawvalue.Value) (Literal, error) {
	switch v.Str() {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	return nil, c.fail("cannot parse %q as Boolean", v.Str())
}

func stringToInt32(c coercion, v rawvalue.Value) (Literal, error) {
	i, err := strconv.ParseInt(v.Str(), 10, 32)
	if err != nil {
		return nil, c.fail("cannot parse %q as a 32-bit integer", v.Str())
	}
	return Int32(int32(i)), nil
}

func stringToInt64(c coercion, v rawvalue.Value) (Literal, error) {
	i, err := strconv.ParseInt(v.Str(), 10, 64)
	if err != nil {
		return nil, c.fail("cannot parse %q as a 64-bit integer", v.Str())
	}
	return Int64(i), nil
}

func stringToFloat32(c coercion, v rawvalue.Value) (Literal, error) {
	f, err := strconv.ParseFloat(v.Str(), 32)
	if err != nil {
		return nil, c.fail("cannot parse %q as a 32-bit float", v.Str())
	}
	return Float32(float32(f)), nil
}

func stringToFloat64(c coercion, v rawvalue.Value) (Literal, error) {
	f, err := strconv.ParseFloat(v.Str(), 64)
	if err != nil {
		return nil, c.fail("cannot parse %q as a 64-bit float", v.Str())
	}
	return Float64(f), nil
}

// Booleans

func boolPassThrough(_ coercion, v rawvalue.Value) (Literal, error) {
	return Bool(v.BoolValue()), nil
}

func boolToEnum(c coercion, v rawvalue.Value) (Literal, error) {
	return c.enum(strconv.FormatBool(v.BoolValue()))
}

func boolToList(_ coercion, v rawvalue.Value) (Literal, error) {
	return List(Str(strconv.FormatBool(v.BoolValue()))), nil
}

// Integers

func intToString(_ coercion, v rawvalue.Value) (Literal, error) {
	return Str(strconv.FormatInt(v.IntValue(), 10)), nil
}

func intToInt32(c coercion, v rawvalue.Value) (Literal, error) {
	i := v.IntValue()
	if i < math.MinInt32 || i > math.MaxInt32 {
		return nil, c.fail("%d overflows a 32-bit integer", i)
	}
	return Int32(int32(i)), nil
}

func intToInt64(_ coercion, v rawvalue.Value) (Literal, error) {
	return Int64(v.IntValue()), nil
}

func intToFloat32(_ coercion, v rawvalue.Value) (Literal, error) {
	return Float32(float32(v.IntValue())), nil
}

func intToFloat64(_ coercion, v rawvalue.Value) (Literal, error) {
	return Float64(float64(v.IntValue())), nil
}

// Floats

func floatToString(_ coercion, v rawvalue.Value) (Literal, error) {
	return Str(v.Str()), nil
}

func floatToFloat32(_ coercion, v rawvalue.Value) (Literal, error) {
	return Float32(float32(v.FloatValue())), nil
}

func floatToFloat64(_ coercion, v rawvalue.Value) (Literal, error) {
	return Float64(v.FloatValue()), nil
}

// Sequences

func sequenceToString(c coercion, v rawvalue.Value) (Literal, error) {
	items := v.Items()
	pieces := make([]string, len(items))
	for i, item := range items {
		switch item.Kind() {
		case rawvalue.KindString, rawvalue.KindFloat:
			pieces[i] = item.Str()
		case rawvalue.KindInt:
			pieces[i] = strconv.FormatInt(item.IntValue(), 10)
		case rawvalue.KindBool:
			pieces[i] = strconv.FormatBool(item.BoolValue())
		default:
			return nil, c.fail("cannot join %s element %#v into a string", item.Kind(), item)
		}
	}
	return Str(strings.Join(pieces, ",")), nil
}

func sequenceToEnums(c coercion, v rawvalue.Value) (Literal, error) {
	items := v.Items()
	values := make([]string, len(items))
	for i, item := range items {
		if item.Kind() != rawvalue.KindString {
			return nil, c.fail("list element %#v is not a string", item)
		}
		values[i] = item.Str()
	}
	return enumList(c, values)
}

func sequenceToList(c coercion, v rawvalue.Value) (Literal, error) {
	items := v.Items()
	elems := make([]Literal, len(items))
	for i, item := range items {
		if item.Kind() != rawvalue.KindString {
			return nil, c.fail("list element %#v is not a string", item)
		}
		elems[i] = Str(item.Str())
	}
	return List(elems...), nil
}

// Enums

// enum maps one wire value to its variant. Empty values fall back to the
// configured default for the parameter.
func (c coercion) enum(value string) (Literal, error) {
	name := c.param.Name
	typ := c.opts.Namer(name)
	if value == "" {
		def, ok := c.opts.EmptyEnumDefaults[name]
		if !ok {
			return nil, Errorf(CodeEnumValidationFailure, "%s: empty value is not a valid option", name).
				WithDetail("param", name)
		}
		return Enum(typ, c.opts.Namer(def), def), nil
	}
	if !c.param.HasOption(value) {
		return nil, Errorf(CodeEnumValidationFailure, "%s: options [%s] does not contain value %q",
			name, strings.Join(c.param.Options, ", "), value).
			WithDetail("param", name).
			WithDetail("value", value)
	}
	return Enum(typ, c.opts.Namer(value), value), nil
}

// enumList maps each value through enum, keeping order. Every invalid value
// is reported.
func enumList(c coercion, values []string) (Literal, error) {
	var (
		elems = make([]Literal, 0, len(values))
		errs  []error
	)
	for _, s := range values {
		e, err := c.enum(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		elems = append(elems, e)
	}
	if len(errs) > 0 {
		return nil, joinErrors(errs)
	}
	return List(elems...), nil
}
