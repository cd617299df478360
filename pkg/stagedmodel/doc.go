// Package stagedmodel runs the lifecycle of a machine learning experiment in stages.
//
// A StagedModel wraps a Model, which supplies the experiment specific parts: how raw data is preprocessed, how the
// model state is loaded and saved, how predictions are made, and the ordered list of named training stages. The
// StagedModel drives them in a fixed order:
//
//   - Init preprocesses the unlabeled, train and test datasets found in the data folder, writes each result next to
//     its source with a "preprocessed_" prefix, then loads the model.
//   - Train resumes at the stage named in the configuration, runs it and every following stage, and saves the model
//     after each one. An interrupted run can be restarted from the stage that did not complete.
//   - Submit predicts a dataset and writes the (id, prediction) submission file in the results folder.
//
// Every operation is synchronous and stops on the first error. Files written before the error stay on disk.
package stagedmodel
