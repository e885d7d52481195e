package k8sconf

import (
	"net/http"
	"net/url"

	"github.com/nineking424/kafka-dist/shared/errors"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// KubernetesConfig returns the in-cluster rest config, falling back to the
// local kubeconfig outside a pod.
func KubernetesConfig() (*rest.Config, error) {
	conf, err := rest.InClusterConfig()
	if err != nil {
		loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
		conf, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
		if err != nil {
			return nil, errors.Wrap(err)
		}
	}

	conf.Proxy = func(*http.Request) (*url.URL, error) {
		// Never use proxy for k8s API
		return nil, nil // nolint
	}
	return conf, nil
}
