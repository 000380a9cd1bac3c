// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manifest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/radixtools/transactionlib/address"
)

// Parse converts a textual manifest into its in-memory form. Embedded
// addresses are self-describing, so no network context is needed.
func Parse(src string) (*Manifest, error) {
	tokens, err := newLexer(src).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parseManifest()
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.Type != tokenEof {
		p.pos++
	}
	return tok
}

func (p *parser) expect(tokType tokenType) (token, error) {
	tok := p.advance()
	if tok.Type != tokType {
		return token{}, p.errorf(tok, "expected %s", tokType)
	}
	return tok, nil
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &SyntaxError{
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseManifest() (*Manifest, error) {
	ret := &Manifest{}
	for p.peek().Type != tokenEof {
		instruction, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		ret.Instructions = append(ret.Instructions, instruction)
	}
	return ret, nil
}

func (p *parser) parseInstruction() (Instruction, error) {
	opTok, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	op, err := OpFromName(opTok.Literal)
	if err != nil {
		return nil, err
	}
	var instruction Instruction
	switch op {
	case OpTakeFromWorktop:
		var i TakeFromWorktop
		err = p.parseOperands(&i.ResourceAddress, &i.IntoBucket)
		instruction = i
	case OpTakeFromWorktopByAmount:
		var i TakeFromWorktopByAmount
		err = p.parseOperands(&i.Amount, &i.ResourceAddress, &i.IntoBucket)
		instruction = i
	case OpReturnToWorktop:
		var i ReturnToWorktop
		err = p.parseOperands(&i.Bucket)
		instruction = i
	case OpAssertWorktopContains:
		var i AssertWorktopContains
		err = p.parseOperands(&i.ResourceAddress)
		instruction = i
	case OpPopFromAuthZone:
		var i PopFromAuthZone
		err = p.parseOperands(&i.IntoProof)
		instruction = i
	case OpPushToAuthZone:
		var i PushToAuthZone
		err = p.parseOperands(&i.Proof)
		instruction = i
	case OpClearAuthZone:
		instruction = ClearAuthZone{}
	case OpCreateProofFromAuthZone:
		var i CreateProofFromAuthZone
		err = p.parseOperands(&i.ResourceAddress, &i.IntoProof)
		instruction = i
	case OpCreateProofFromBucket:
		var i CreateProofFromBucket
		err = p.parseOperands(&i.Bucket, &i.IntoProof)
		instruction = i
	case OpCloneProof:
		var i CloneProof
		err = p.parseOperands(&i.Proof, &i.IntoProof)
		instruction = i
	case OpDropProof:
		var i DropProof
		err = p.parseOperands(&i.Proof)
		instruction = i
	case OpDropAllProofs:
		instruction = DropAllProofs{}
	case OpCallFunction:
		var i CallFunction
		if err = p.parseOperands(
			&i.PackageAddress,
			&i.BlueprintName,
			&i.FunctionName,
		); err == nil {
			i.Arguments, err = p.parseArguments()
		}
		instruction = i
	case OpCallMethod:
		var i CallMethod
		if err = p.parseOperands(
			&i.ComponentAddress,
			&i.MethodName,
		); err == nil {
			i.Arguments, err = p.parseArguments()
		}
		instruction = i
	case OpCallMethodWithAllResources:
		var i CallMethodWithAllResources
		err = p.parseOperands(&i.ComponentAddress, &i.MethodName)
		instruction = i
	case OpPublishPackage:
		var i PublishPackage
		err = p.parseOperands(&i.Code, &i.Abi)
		instruction = i
	default:
		return nil, &UnsupportedInstructionError{Op: opTok.Literal}
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenSemicolon); err != nil {
		return nil, err
	}
	return instruction, nil
}

// parseOperands parses one value per destination, requiring each to match
// the destination's kind
func (p *parser) parseOperands(dests ...any) error {
	for _, dest := range dests {
		tok := p.peek()
		value, err := p.parseValue()
		if err != nil {
			return err
		}
		if err := assignOperand(dest, value); err != nil {
			return p.errorf(tok, "%s", err)
		}
	}
	return nil
}

// parseArguments parses the remaining values before the closing semicolon
func (p *parser) parseArguments() ([]Value, error) {
	var args []Value
	for p.peek().Type != tokenSemicolon && p.peek().Type != tokenEof {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

func assignOperand(dest any, value Value) error {
	switch d := dest.(type) {
	case *ResourceAddressValue:
		v, ok := value.(ResourceAddressValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindResourceAddress,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	case *ComponentAddressValue:
		v, ok := value.(ComponentAddressValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindComponentAddress,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	case *PackageAddressValue:
		v, ok := value.(PackageAddressValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindPackageAddress,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	case *BucketValue:
		v, ok := value.(BucketValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindBucket,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	case *ProofValue:
		v, ok := value.(ProofValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindProof,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	case *DecimalValue:
		v, ok := value.(DecimalValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindDecimal,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	case *StringValue:
		v, ok := value.(StringValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindString,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	case *BytesValue:
		v, ok := value.(BytesValue)
		if !ok {
			return &UnexpectedValueKindError{
				Expected: ValueKindBytes,
				Actual:   value.ValueKind(),
			}
		}
		*d = v
	default:
		return fmt.Errorf("unknown operand destination type: %T", dest)
	}
	return nil
}

func (p *parser) parseValue() (Value, error) {
	tok := p.advance()
	switch tok.Type {
	case tokenString:
		return StringValue{Value: tok.Literal}, nil
	case tokenNumber:
		return p.parseNumber(tok)
	case tokenIdent:
		return p.parseIdentValue(tok)
	default:
		return nil, p.errorf(tok, "expected a value, found %s", tok.Type)
	}
}

func (p *parser) parseIdentValue(tok token) (Value, error) {
	switch tok.Literal {
	case "true":
		return BoolValue{Value: true}, nil
	case "false":
		return BoolValue{Value: false}, nil
	case "Decimal":
		inner, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		value, err := NewDecimalFromString(inner)
		if err != nil {
			return nil, p.errorf(tok, "%s", err)
		}
		return value, nil
	case "Bytes":
		inner, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		data, err := hex.DecodeString(inner)
		if err != nil {
			return nil, p.errorf(tok, "invalid hex in Bytes: %s", err)
		}
		return BytesValue{Value: data}, nil
	case "Bucket":
		inner, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		return BucketValue{Identifier: inner}, nil
	case "Proof":
		inner, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		return ProofValue{Identifier: inner}, nil
	case "ResourceAddress", "ComponentAddress", "PackageAddress", "SystemAddress":
		inner, err := p.parseStringArg()
		if err != nil {
			return nil, err
		}
		addr, err := address.NewAddress(inner)
		if err != nil {
			return nil, err
		}
		switch tok.Literal {
		case "ResourceAddress":
			return ResourceAddressValue{Address: addr}, nil
		case "ComponentAddress":
			return ComponentAddressValue{Address: addr}, nil
		case "PackageAddress":
			return PackageAddressValue{Address: addr}, nil
		default:
			return SystemAddressValue{Address: addr}, nil
		}
	case "Enum":
		return p.parseEnum()
	case "Tuple":
		return p.parseTuple()
	case "Array":
		return p.parseArray(tok)
	default:
		return nil, p.errorf(tok, "unknown value type %q", tok.Literal)
	}
}

// parseStringArg parses the common ("...") argument form
func (p *parser) parseStringArg() (string, error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return "", err
	}
	strTok, err := p.expect(tokenString)
	if err != nil {
		return "", err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return "", err
	}
	return strTok.Literal, nil
}

func (p *parser) parseEnum() (Value, error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	variantTok, err := p.expect(tokenNumber)
	if err != nil {
		return nil, err
	}
	variantValue, err := p.parseNumber(variantTok)
	if err != nil {
		return nil, err
	}
	variant, ok := variantValue.(U8Value)
	if !ok {
		return nil, p.errorf(variantTok, "enum variant must be a u8 literal")
	}
	var fields []Value
	for p.peek().Type == tokenComma {
		p.advance()
		field, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return EnumValue{Variant: variant.Value, Fields: fields}, nil
}

func (p *parser) parseTuple() (Value, error) {
	elements, err := p.parseValueList()
	if err != nil {
		return nil, err
	}
	return TupleValue{Elements: elements}, nil
}

func (p *parser) parseArray(tok token) (Value, error) {
	if _, err := p.expect(tokenLAngle); err != nil {
		return nil, err
	}
	kindTok, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	elementKind, err := ValueKindFromName(kindTok.Literal)
	if err != nil {
		return nil, p.errorf(kindTok, "%s", err)
	}
	if _, err := p.expect(tokenRAngle); err != nil {
		return nil, err
	}
	elements, err := p.parseValueList()
	if err != nil {
		return nil, err
	}
	ret := ArrayValue{ElementKind: elementKind, Elements: elements}
	if err := ret.Validate(); err != nil {
		return nil, p.errorf(tok, "%s", err)
	}
	return ret, nil
}

// parseValueList parses a parenthesized, comma-separated list of values
func (p *parser) parseValueList() ([]Value, error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	var elements []Value
	if p.peek().Type != tokenRParen {
		for {
			element, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
			if p.peek().Type != tokenComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return elements, nil
}

var numberSuffixes = []string{"u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64"}

func (p *parser) parseNumber(tok token) (Value, error) {
	literal := tok.Literal
	var suffix string
	for _, tmpSuffix := range numberSuffixes {
		if strings.HasSuffix(literal, tmpSuffix) {
			suffix = tmpSuffix
			break
		}
	}
	if suffix == "" {
		return nil, p.errorf(
			tok,
			"number literal %q is missing a type suffix",
			literal,
		)
	}
	digits := literal[:len(literal)-len(suffix)]
	switch suffix {
	case "u8":
		value, err := parseUintBounded(digits, 8, "u8")
		if err != nil {
			return nil, err
		}
		return U8Value{Value: uint8(value)}, nil
	case "u16":
		value, err := parseUintBounded(digits, 16, "u16")
		if err != nil {
			return nil, err
		}
		return U16Value{Value: uint16(value)}, nil
	case "u32":
		value, err := parseUintBounded(digits, 32, "u32")
		if err != nil {
			return nil, err
		}
		return U32Value{Value: uint32(value)}, nil
	case "u64":
		value, err := parseUintBounded(digits, 64, "u64")
		if err != nil {
			return nil, err
		}
		return U64Value{Value: value}, nil
	case "i8":
		value, err := parseIntBounded(digits, 8, "i8")
		if err != nil {
			return nil, err
		}
		return I8Value{Value: int8(value)}, nil
	case "i16":
		value, err := parseIntBounded(digits, 16, "i16")
		if err != nil {
			return nil, err
		}
		return I16Value{Value: int16(value)}, nil
	case "i32":
		value, err := parseIntBounded(digits, 32, "i32")
		if err != nil {
			return nil, err
		}
		return I32Value{Value: int32(value)}, nil
	default:
		value, err := parseIntBounded(digits, 64, "i64")
		if err != nil {
			return nil, err
		}
		return I64Value{Value: value}, nil
	}
}

func parseUintBounded(digits string, bitSize int, field string) (uint64, error) {
	value, err := strconv.ParseUint(digits, 10, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			max := uint64(math.MaxUint64)
			if bitSize < 64 {
				max = uint64(1)<<bitSize - 1
			}
			return 0, &OutOfRangeError{
				Field: field,
				Min:   0,
				Max:   max,
				Value: digits,
			}
		}
		return 0, fmt.Errorf("invalid %s literal: %q", field, digits)
	}
	return value, nil
}

func parseIntBounded(digits string, bitSize int, field string) (int64, error) {
	value, err := strconv.ParseInt(digits, 10, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			min := int64(math.MinInt64)
			max := uint64(math.MaxInt64)
			if bitSize < 64 {
				min = -(int64(1) << (bitSize - 1))
				max = uint64(1)<<(bitSize-1) - 1
			}
			return 0, &OutOfRangeError{
				Field: field,
				Min:   min,
				Max:   max,
				Value: digits,
			}
		}
		return 0, fmt.Errorf("invalid %s literal: %q", field, digits)
	}
	return value, nil
}
