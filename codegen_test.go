package foobar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateSource(t *testing.T, source string) string {
	t.Helper()
	tokens, err := NewLexer(source).Tokenize()
	require.NoError(t, err)
	prog, err := NewParser(tokens).Parse()
	require.NoError(t, err)
	out, err := Generate(prog)
	require.NoError(t, err)
	return out
}

func TestGenerateHelloWorld(t *testing.T) {
	out := generateSource(t, `Main() {
		CONSOLE.Print("Hello, world!");
	}`)
	assert.Contains(t, out, "int main(void)")
	assert.Contains(t, out, `CONSOLE_Print("Hello, world!")`)
}

func TestGenerateArithmeticPower(t *testing.T) {
	out := generateSource(t, `Main() {
		integer result = 2 ^ 10;
		CONSOLE.PrintInteger(result);
	}`)
	assert.Contains(t, out, "pow(2, 10)")
}

func TestGenerateClassConstructorAndMethod(t *testing.T) {
	out := generateSource(t, `class Animal {
		private string name;

		public Initialize(string name) {
			thisclass.name = name;
		}

		public string GetName() {
			return thisclass.name;
		}
	}

	Main() {
		Animal a = new Animal("Rex");
		CONSOLE.Print(a.GetName());
	}`)

	assert.Contains(t, out, "typedef struct Animal {")
	assert.Contains(t, out, "Animal_new_string")
	assert.Contains(t, out, "Animal_GetName_void")
}

func TestGenerateInheritanceWrapperAndIsA(t *testing.T) {
	out := generateSource(t, `class Animal {
		public string Speak() {
			return "...";
		}
	}

	class Dog inherits Animal {
	}

	Main() {
		Dog d = new Dog();
		boolean isAnimal = d isa Animal;
		CONSOLE.Print(d.Speak());
	}`)

	assert.Contains(t, out, "Dog_Speak_void")
	assert.Contains(t, out, "_isa_check(")
}

func TestGenerateArrayPipeline(t *testing.T) {
	out := generateSource(t, `Main() {
		integer[] numbers = [1, 2, 3, 4];
		integer[] doubled = numbers.map(n -> n * 2);
		integer total = doubled.reduce((acc, n) -> acc + n, 0);
		CONSOLE.PrintInteger(total);
	}`)

	assert.Contains(t, out, "IntArray_from_literal")
	assert.Contains(t, out, "IntArray_map")
	assert.Contains(t, out, "IntArray_reduce")
	assert.Contains(t, out, "_generated_lambda_0")
	assert.Contains(t, out, "_generated_lambda_1")
}

func TestGenerateArraySort(t *testing.T) {
	out := generateSource(t, `Main() {
		integer[] numbers = [3, 1, 2];
		numbers.sort((a, b) -> a - b);
		numbers.print();
	}`)

	assert.Contains(t, out, "IntArray_sort")
	assert.Contains(t, out, "const void* _sort_a")
	assert.Contains(t, out, "int a = *(int*)_sort_a;")
	assert.Contains(t, out, "int b = *(int*)_sort_b;")
	assert.Contains(t, out, "IntArray_print")
}

func TestGenerateMainTranslatesBooleanResultToExitCode(t *testing.T) {
	out := generateSource(t, `Main() {
		return true;
	}`)

	assert.Contains(t, out, "static bool Main_internal(void)")
	assert.Contains(t, out, "return true;")
	assert.Contains(t, out, "bool result = Main_internal();")
	assert.Contains(t, out, "return result ? 0 : 1;")
}
