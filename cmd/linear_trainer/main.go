/*
 *	Copyright 2025 The ember Authors
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// linear_trainer trains a linear predictor with SGD and saves it lowered
// onto a model graph.
//
// It loads a preprocessing map if one is given (otherwise it starts from an
// identity map over the raw input dimension), maps the dataset through it,
// trains, lowers the trained predictor on top of the map's model and saves
// the combined model.
//
// Dataset files are plain text, one example per line: the label followed by
// the feature values, whitespace-separated.
//
// Typical use:
//
//	linear_trainer --data=train.txt --dim=2 --output_model=model.json --epochs=20 -v=1
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/emberml/ember/common"
	"github.com/emberml/ember/model"
	"github.com/emberml/ember/trainers"

	_ "github.com/emberml/ember/nodes" // Register the generic node kinds.
)

var (
	flagData         = flag.String("data", "", "Dataset file to train on: one example per line, label first, then features.")
	flagDimension    = flag.Int("dim", 0, "Input dimension. Required when --input_map is not given.")
	flagInputMap     = flag.String("input_map", "", "Preprocessing map to load and train on top of. If empty, an identity map of --dim inputs is used.")
	flagOutputModel  = flag.String("output_model", "", "Where to save the combined model. If empty, the model is not saved.")
	flagOutputMap    = flag.String("output_map", "", "Where to save the combined map (model plus the predictor's output as the map output). If empty, the map is not saved.")
	flagEpochs       = flag.Int("epochs", 10, "Number of passes over the dataset.")
	flagLearningRate = flag.Float64("learning_rate", 0.01, "SGD learning rate.")
	flagL2           = flag.Float64("l2", 0.0, "L2 regularization weight.")
	flagSeed         = flag.Int64("seed", 42, "Seed for the dataset shuffling between epochs.")
	flagProgress     = flag.Bool("progress", true, "Show a progress bar while training.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagData == "" {
		klog.Exitf("--data is required; see --help")
	}

	// Build or load the preprocessing map (mirrors the trainer drivers'
	// behavior: no map given means identity over the raw input).
	var inputMap *model.Map
	if *flagInputMap != "" {
		inputMap = must.M1(common.LoadMap(*flagInputMap))
		klog.V(1).Infof("loaded map with %d nodes, %d outputs", inputMap.Model().NumNodes(), inputMap.OutputSize())
	} else {
		if *flagDimension <= 0 {
			klog.Exitf("--dim must be set (and positive) when --input_map is not given")
		}
		inputMap = model.NewSingleInputMap(*flagDimension)
	}

	rawDataset := must.M1(loadDataset(*flagData))
	klog.V(1).Infof("loaded %d examples from %s", len(rawDataset), *flagData)

	// Map every example through the preprocessing graph.
	dataset := make(trainers.Dataset, len(rawDataset))
	for ii, example := range rawDataset {
		mapped := must.M1(inputMap.Compute(example.Input))
		dataset[ii] = trainers.Example{Input: mapped, Label: example.Label}
	}

	// Train.
	trainer := trainers.NewSGD(inputMap.OutputSize(), *flagLearningRate, *flagL2)
	rng := rand.New(rand.NewSource(*flagSeed))
	var bar *progressbar.ProgressBar
	if *flagProgress {
		bar = progressbar.Default(int64(*flagEpochs), "training")
	}
	for epoch := 0; epoch < *flagEpochs; epoch++ {
		dataset.Shuffle(rng)
		trainer.Update(dataset)
		if bar != nil {
			_ = bar.Add(1)
		}
		if klog.V(1).Enabled() {
			klog.V(1).Infof("epoch %d: mse=%.6f", epoch, trainer.MeanSquaredError(dataset))
		}
	}
	predictor := trainer.LinearPredictor()
	fmt.Printf("Trained linear predictor over %d examples x %d epochs, final mse=%.6f\n",
		len(dataset), *flagEpochs, trainer.MeanSquaredError(dataset))

	if *flagOutputModel == "" && *flagOutputMap == "" {
		return
	}

	// Lower the predictor on top of the map's outputs and persist the
	// combined graph.
	outputs := must.M1(predictor.AddToModel(inputMap.Model(), inputMap.OutputCoordinates()))
	if *flagOutputModel != "" {
		must.M(common.SaveModel(*flagOutputModel, inputMap.Model()))
		reportSaved(*flagOutputModel)
	}
	if *flagOutputMap != "" {
		must.M(inputMap.SetOutputs(outputs))
		must.M(common.SaveMap(*flagOutputMap, inputMap))
		reportSaved(*flagOutputMap)
	}
}

func reportSaved(filePath string) {
	info, err := os.Stat(common.ReplaceTildeInDir(filePath))
	if err != nil {
		klog.Warningf("saved %s but cannot stat it: %v", filePath, err)
		return
	}
	fmt.Printf("Saved %s (%s)\n", filePath, humanize.Bytes(uint64(info.Size())))
}

// loadDataset parses a plain text dataset: one example per line, the label
// first, then the feature values. Blank lines and lines starting with '#'
// are skipped.
func loadDataset(filePath string) (trainers.Dataset, error) {
	f, err := os.Open(common.ReplaceTildeInDir(filePath))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %q", filePath)
	}
	defer func() { _ = f.Close() }()

	var ds trainers.Dataset
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return nil, errors.Errorf("dataset %q line %d: need a label and at least one feature", filePath, lineNum)
		}
		values := make([]float64, len(parts))
		for ii, part := range parts {
			values[ii], err = strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset %q line %d field %d", filePath, lineNum, ii)
			}
		}
		ds = append(ds, trainers.Example{Label: values[0], Input: values[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading dataset %q", filePath)
	}
	return ds, nil
}
