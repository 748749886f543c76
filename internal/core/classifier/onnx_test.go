package classifier

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textclf/internal/core/vectorizer"
)

func TestDecodeONNX_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		raw  string
		msg  string
	}{
		{"malformed", `{`, "parse onnx"},
		{"classes", `{"classes": ["a"], "n_features": 2, "model_path": "m.onnx"}`, "at least two classes"},
		{"features", `{"classes": ["a", "b"], "n_features": 0, "model_path": "m.onnx"}`, "n_features must be positive"},
		{"no model path", `{"classes": ["a", "b"], "n_features": 2}`, "model_path is required"},
		{"missing model", `{"classes": ["a", "b"], "n_features": 2, "model_path": "m.onnx"}`, "onnx model"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeONNX([]byte(tc.raw), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("models", "m.onnx"), resolve("models", "m.onnx"))
	assert.Equal(t, "/abs/m.onnx", resolve("models", "/abs/m.onnx"))
	assert.Equal(t, "m.onnx", resolve("", "m.onnx"))
}

// TestONNXPredict runs against a real exported model when one is provided:
// TEXTCLF_ONNX_MODEL points at a two-class model over TEXTCLF_ONNX_FEATURES inputs
// and ONNXRUNTIME_LIB at the shared library
func TestONNXPredict(t *testing.T) {
	model, lib := os.Getenv("TEXTCLF_ONNX_MODEL"), os.Getenv("ONNXRUNTIME_LIB")
	if model == "" || lib == "" {
		t.Skip("TEXTCLF_ONNX_MODEL and ONNXRUNTIME_LIB not set")
	}
	nf := 1
	if s := os.Getenv("TEXTCLF_ONNX_FEATURES"); s != "" {
		n, err := strconv.Atoi(s)
		require.NoError(t, err)
		nf = n
	}

	o, err := newONNX(model, lib, ONNXSpec{
		NFeatures:  nf,
		InputName:  DefaultONNXInput,
		OutputName: DefaultONNXOutput,
		Classes:    []Label{IntLabel(0), IntLabel(1)},
	})
	require.NoError(t, err)
	defer o.Close()

	row := vectorizer.Vector{Dim: nf}
	proba, err := o.PredictProba([]vectorizer.Vector{row, row})
	require.NoError(t, err)
	require.Len(t, proba, 2)
	assert.Equal(t, proba[0], proba[1])

	labels, err := o.Predict([]vectorizer.Vector{row})
	require.NoError(t, err)
	require.Len(t, labels, 1)
}
