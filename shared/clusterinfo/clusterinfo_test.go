package clusterinfo

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/stretchr/testify/suite"
)

const testNamespace = "kafka"

type ClusterInfoSuite struct {
	suite.Suite
	client *fake.Clientset
}

func (s *ClusterInfoSuite) SetupTest() {
	s.client = fake.NewSimpleClientset()
}

func (s *ClusterInfoSuite) TestNewKRaftClusterIDFormat() {
	id := NewKRaftClusterID()
	s.Require().Len(id, 22)
	s.Require().NotEqual(id, NewKRaftClusterID())
}

func (s *ClusterInfoSuite) TestGetClusterIDMissingConfigMap() {
	_, err := GetClusterID(context.Background(), s.client, testNamespace)
	s.Require().Error(err)
}

func (s *ClusterInfoSuite) TestSetThenGet() {
	published, err := SetClusterID(context.Background(), s.client, testNamespace, "ABC123")
	s.Require().NoError(err)
	s.Require().Equal("ABC123", published)

	clusterID, err := GetClusterID(context.Background(), s.client, testNamespace)
	s.Require().NoError(err)
	s.Require().Equal("ABC123", clusterID)

	configMap, err := s.client.CoreV1().ConfigMaps(testNamespace).Get(context.Background(), ClusterInfoConfigMapName, metav1.GetOptions{})
	s.Require().NoError(err)
	s.Require().NotNil(configMap.Immutable)
	s.Require().True(*configMap.Immutable)
}

func (s *ClusterInfoSuite) TestSetLosingTheRaceReturnsPublishedID() {
	_, err := SetClusterID(context.Background(), s.client, testNamespace, "FIRST1")
	s.Require().NoError(err)

	clusterID, err := SetClusterID(context.Background(), s.client, testNamespace, "SECOND")
	s.Require().NoError(err)
	s.Require().Equal("FIRST1", clusterID)
}

func (s *ClusterInfoSuite) TestGetOrCreatePublishesProposedID() {
	clusterID, err := GetOrCreateClusterID(context.Background(), s.client, testNamespace, "ABC123")
	s.Require().NoError(err)
	s.Require().Equal("ABC123", clusterID)
}

func (s *ClusterInfoSuite) TestGetOrCreatePrefersPublishedID() {
	_, err := SetClusterID(context.Background(), s.client, testNamespace, "ABC123")
	s.Require().NoError(err)

	clusterID, err := GetOrCreateClusterID(context.Background(), s.client, testNamespace, "DIFFER")
	s.Require().NoError(err)
	s.Require().Equal("ABC123", clusterID)
}

func (s *ClusterInfoSuite) TestGetOrCreateGeneratesWhenUnset() {
	clusterID, err := GetOrCreateClusterID(context.Background(), s.client, testNamespace, "")
	s.Require().NoError(err)
	s.Require().Len(clusterID, 22)

	published, err := GetClusterID(context.Background(), s.client, testNamespace)
	s.Require().NoError(err)
	s.Require().Equal(clusterID, published)
}

func TestClusterInfoSuite(t *testing.T) {
	suite.Run(t, new(ClusterInfoSuite))
}
