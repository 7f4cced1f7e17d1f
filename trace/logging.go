/*
Copyright The Wharf Authors.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package trace

import (
	"github.com/sirupsen/logrus"
)

// Logging returns a ValidationTrace that logs validation progress to logger.
// Rejections are logged at warning level; everything else at debug level.
func Logging(logger logrus.FieldLogger) *ValidationTrace {
	return &ValidationTrace{
		ValidateStart: func(repositoryName string, schemes []string) {
			logger.WithFields(logrus.Fields{
				"repository": repositoryName,
				"schemes":    schemes,
			}).Debug("validating repository transport")
		},
		ValidateDone: func(repositoryName string, connectorName string, err error) {
			entry := logger.WithFields(logrus.Fields{
				"repository": repositoryName,
				"connector":  connectorName,
			})
			if err != nil {
				entry.WithError(err).Warn("repository transport rejected")
				return
			}
			entry.Debug("repository transport validated")
		},
	}
}
