// Command textclf-predict loads the serving artifacts and prints one JSON line per text
//
//	textclf-predict -text "great product"
//	textclf-predict -proba < samples.txt
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"textclf/internal/core/artifact"
	"textclf/internal/core/classifier"
	"textclf/internal/core/version"
	"textclf/internal/platform/config"
	"textclf/internal/platform/logger"
	"textclf/internal/services/predict/domain"
	predictmod "textclf/internal/services/predict/module"
	predictsvc "textclf/internal/services/predict/service"
)

// line is one output record; Error is set instead of Prediction on failure
type line struct {
	Text       string             `json:"text"`
	Prediction *classifier.Label  `json:"prediction,omitempty"`
	Proba      map[string]float64 `json:"proba,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// errFailed reports that at least one text could not be predicted
var errFailed = errors.New("one or more predictions failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		logger.Get().Error().Err(err).Msg("textclf-predict failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	paths := predictmod.PathsFromConfig(config.New())

	fs := flag.NewFlagSet("textclf-predict", flag.ContinueOnError)
	vec := fs.String("vectorizer", paths.Vectorizer, "vectorizer artifact path (CORE_MODEL_VECTORIZER_PATH)")
	clf := fs.String("classifier", paths.Classifier, "classifier artifact path (CORE_MODEL_CLASSIFIER_PATH)")
	text := fs.String("text", "", "text to classify; reads one text per stdin line when empty")
	proba := fs.Bool("proba", false, "include class probabilities when the model has them")
	info := fs.Bool("info", false, "print artifact metadata and exit")
	showVersion := fs.Bool("version", false, "print the build version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		_, err := fmt.Fprintln(stdout, version.Info().String())
		return err
	}

	model, err := artifact.Load(ctx, artifact.Paths{Vectorizer: *vec, Classifier: *clf})
	if err != nil {
		return err
	}
	defer func() { _ = model.Close() }()

	enc := json.NewEncoder(stdout)
	if *info {
		return enc.Encode(map[string]artifact.Info{
			"vectorizer": model.VectorizerInfo,
			"classifier": model.ClassifierInfo,
		})
	}

	svc := predictsvc.New(model, predictsvc.Options{})
	predict := func(t string) error {
		out := line{Text: t}
		in := domain.PredictInput{Text: t}
		if *proba {
			res, err := svc.Score(ctx, in)
			if err != nil {
				out.Error = err.Error()
			} else {
				out.Prediction, out.Proba = &res.Prediction, res.Proba
			}
		} else {
			res, err := svc.Predict(ctx, in)
			if err != nil {
				out.Error = err.Error()
			} else {
				out.Prediction = &res.Prediction
			}
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
		if out.Error != "" {
			return errFailed
		}
		return nil
	}

	if *text != "" {
		return predict(*text)
	}

	failed := false
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := predict(sc.Text()); err != nil {
			if !errors.Is(err, errFailed) {
				return err
			}
			failed = true
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if failed {
		return errFailed
	}
	return nil
}
