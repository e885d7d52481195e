package identity

import (
	"strconv"
	"strings"

	"github.com/nineking424/kafka-dist/shared/errors"
)

// OrdinalFromPodName extracts the StatefulSet ordinal from a pod name of the
// form <statefulset>-<ordinal>. This replaces the ${HOSTNAME##*-} shell idiom
// with typed parsing that rejects names carrying no ordinal suffix.
func OrdinalFromPodName(podName string) (int, error) {
	idx := strings.LastIndex(podName, "-")
	if idx == -1 || idx == len(podName)-1 {
		return 0, errors.Errorf("pod name %q carries no ordinal suffix", podName)
	}

	ordinal, err := strconv.Atoi(podName[idx+1:])
	if err != nil {
		return 0, errors.Errorf("pod name %q ordinal suffix is not a number: %w", podName, err)
	}
	if ordinal < 0 {
		return 0, errors.Errorf("pod name %q ordinal suffix is negative", podName)
	}

	return ordinal, nil
}
