package deploy

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Step is one fallible stage of the deployment pipeline.
type Step struct {
	Name string
	Run  func() error
}

// RunPipeline executes steps in order and stops at the first failure. Every
// stage either completes or aborts the whole run; there is no rollback of
// earlier stages.
func RunPipeline(log *logrus.Entry, steps []Step) error {
	for _, step := range steps {
		log.Debug("Running step: " + step.Name)
		if err := step.Run(); err != nil {
			return errors.Wrap(err, step.Name+" failed")
		}
	}
	return nil
}
