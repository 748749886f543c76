package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"textclf/internal/core/vectorizer"
)

const (
	// DefaultONNXInput is the input name skl2onnx gives a float feature matrix
	DefaultONNXInput = "float_input"
	// DefaultONNXOutput is the probability output of a model exported without zipmap
	DefaultONNXOutput = "probabilities"
	// DefaultONNXLibrary is looked up next to the model when library_path is empty
	DefaultONNXLibrary = "libonnxruntime.so"
)

// ortEnv guards the process-wide runtime, which can only be initialized once
var ortEnv struct {
	once sync.Once
	err  error
}

func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNXSpec is the JSON form of an onnx classifier. Relative paths resolve
// against the directory of the artifact file
type ONNXSpec struct {
	ModelPath   string  `json:"model_path"`
	LibraryPath string  `json:"library_path"`
	NFeatures   int     `json:"n_features"`
	InputName   string  `json:"input_name"`
	OutputName  string  `json:"output_name"`
	Classes     []Label `json:"classes"`
}

// ONNX runs a float32 [n, n_features] -> [n, n_classes] graph
// The session supports concurrent Run calls, tensors are allocated per call
type ONNX struct {
	session *ort.DynamicAdvancedSession
	classes []Label
	dim     int
	model   string
}

var (
	_ Classifier = (*ONNX)(nil)
	_ Prober     = (*ONNX)(nil)
	_ Closer     = (*ONNX)(nil)
)

// DecodeONNX parses spec, resolves its paths against dir and opens a session
func DecodeONNX(raw []byte, dir string) (*ONNX, error) {
	spec := ONNXSpec{InputName: DefaultONNXInput, OutputName: DefaultONNXOutput}
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("classifier: parse onnx: %w", err)
	}
	if err := checkClasses(spec.Classes); err != nil {
		return nil, err
	}
	if spec.NFeatures <= 0 {
		return nil, fmt.Errorf("classifier: n_features must be positive, got %d", spec.NFeatures)
	}
	if spec.ModelPath == "" {
		return nil, fmt.Errorf("classifier: onnx model_path is required")
	}
	model := resolve(dir, spec.ModelPath)
	if _, err := os.Stat(model); err != nil {
		return nil, fmt.Errorf("classifier: onnx model: %w", err)
	}
	lib := spec.LibraryPath
	if lib == "" {
		lib = filepath.Join(filepath.Dir(model), DefaultONNXLibrary)
	} else {
		lib = resolve(dir, lib)
	}
	return newONNX(model, lib, spec)
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

func newONNX(model, lib string, spec ONNXSpec) (*ONNX, error) {
	if err := initORT(lib); err != nil {
		return nil, fmt.Errorf("classifier: onnx runtime init: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(model)
	if err != nil {
		return nil, fmt.Errorf("classifier: onnx model info: %w", err)
	}
	if !hasTensor(inputs, spec.InputName) {
		return nil, fmt.Errorf("classifier: onnx model has no input %q", spec.InputName)
	}
	out, ok := findTensor(outputs, spec.OutputName)
	if !ok {
		return nil, fmt.Errorf("classifier: onnx model has no output %q", spec.OutputName)
	}
	if d := out.Dimensions; len(d) != 2 || (d[1] > 0 && int(d[1]) != len(spec.Classes)) {
		return nil, fmt.Errorf("classifier: onnx output %q shape %v does not fit %d classes", spec.OutputName, d, len(spec.Classes))
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("classifier: onnx session options: %w", err)
	}
	defer opts.Destroy()

	session, err := ort.NewDynamicAdvancedSession(model, []string{spec.InputName}, []string{spec.OutputName}, opts)
	if err != nil {
		return nil, fmt.Errorf("classifier: onnx session: %w", err)
	}
	return &ONNX{session: session, classes: spec.Classes, dim: spec.NFeatures, model: model}, nil
}

func hasTensor(infos []ort.InputOutputInfo, name string) bool {
	_, ok := findTensor(infos, name)
	return ok
}

func findTensor(infos []ort.InputOutputInfo, name string) (ort.InputOutputInfo, bool) {
	for _, in := range infos {
		if in.Name == name {
			return in, true
		}
	}
	return ort.InputOutputInfo{}, false
}

// Classes returns the class labels in output column order
func (o *ONNX) Classes() []Label { return o.classes }

// Dim returns n_features
func (o *ONNX) Dim() int { return o.dim }

// PredictProba runs the graph once for all rows
func (o *ONNX) PredictProba(rows []vectorizer.Vector) ([][]float64, error) {
	if err := checkDim(rows, o.dim); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	n, nf, nc := int64(len(rows)), int64(o.dim), int64(len(o.classes))

	data := make([]float32, n*nf)
	for r, v := range rows {
		base := int64(r) * nf
		for k, i := range v.Indices {
			data[base+int64(i)] = float32(v.Values[k])
		}
	}
	in, err := ort.NewTensor(ort.NewShape(n, nf), data)
	if err != nil {
		return nil, fmt.Errorf("classifier: onnx input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(n, nc))
	if err != nil {
		return nil, fmt.Errorf("classifier: onnx output tensor: %w", err)
	}
	defer out.Destroy()

	if err := o.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("classifier: onnx run: %w", err)
	}

	src := out.GetData()
	proba := make([][]float64, n)
	for r := range proba {
		row := make([]float64, nc)
		for c := range row {
			row[c] = float64(src[int64(r)*nc+int64(c)])
		}
		proba[r] = row
	}
	return proba, nil
}

// Predict returns the most probable class per row
func (o *ONNX) Predict(rows []vectorizer.Vector) ([]Label, error) {
	proba, err := o.PredictProba(rows)
	if err != nil {
		return nil, err
	}
	out := make([]Label, len(proba))
	for i, p := range proba {
		out[i] = o.classes[argmax(p)]
	}
	return out, nil
}

// Close releases the session
func (o *ONNX) Close() error {
	if o == nil || o.session == nil {
		return nil
	}
	return o.session.Destroy()
}
