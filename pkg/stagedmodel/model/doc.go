// Package model provides the data structures shared by the stagedmodel package and its train hooks.
// It defines the description of a training stage and the interface a hook implements to observe a training run.
package model
