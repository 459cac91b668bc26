package yamler_test

import (
	"bytes"
	"testing"

	"github.com/opst/confusionflow/pkg/utils/yamler"
	"gopkg.in/yaml.v3"
)

func TestYamler(t *testing.T) {

	testee := yamler.Map(
		yamler.Entry(yamler.Text("key1", yamler.WithHeadComment("comment1...\ncomment2...")), yamler.Text("value 1")),
		yamler.Entry(yamler.Text("key2"), yamler.Quoted("")),
		yamler.Entry(yamler.Text("key3"), yamler.Number(42, yamler.WithLineComment("line comment"))),
		yamler.Entry(yamler.Text("key4"), yamler.FlowSeq(yamler.Text("a"), yamler.Number(1))),
		yamler.Entry(
			yamler.Text("key5"),
			yamler.Seq(
				yamler.Map(yamler.Entry(yamler.Text("child"), yamler.Number(1.25))),
				yamler.Text("child value: with colon"),
			),
		),
	)

	buf := bytes.NewBuffer(nil)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(testee); err != nil {
		t.Fatal(err)
	}
	enc.Close() // force close to flush

	expected := `# comment1...
# comment2...
key1: value 1
key2: ""
key3: 42 # line comment
key4: [a, 1]
key5:
  - child: 1.25
  - 'child value: with colon'
`

	actual := buf.String()
	if actual != expected {
		t.Errorf("unmatch:\n===actual===\n%s\n===expected===\n%s", actual, expected)
	}
}
