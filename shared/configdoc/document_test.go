package configdoc

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DocumentSuite struct {
	suite.Suite
}

func (s *DocumentSuite) TestPropertiesPreserveInsertionOrder() {
	doc := New()
	doc.Set("node.id", "4")
	doc.Set("process.roles", "broker")
	doc.Set("log.dirs", "/var/lib/kafka/data")

	s.Require().Equal("node.id=4\nprocess.roles=broker\nlog.dirs=/var/lib/kafka/data\n", doc.Properties())
	s.Require().Equal([]string{"node.id", "process.roles", "log.dirs"}, doc.Keys())
}

func (s *DocumentSuite) TestSetOverwritesInPlace() {
	doc := New()
	doc.Set("node.id", "4")
	doc.Set("process.roles", "broker")
	doc.Set("node.id", "5")

	s.Require().Equal(2, doc.Len())
	s.Require().Equal("node.id=5\nprocess.roles=broker\n", doc.Properties())
}

func (s *DocumentSuite) TestGet() {
	doc := New()
	doc.Setf("node.id", "%d", 7)

	value, ok := doc.Get("node.id")
	s.Require().True(ok)
	s.Require().Equal("7", value)

	_, ok = doc.Get("cluster.id")
	s.Require().False(ok)
}

func (s *DocumentSuite) TestEnvironManglesPropertyNames() {
	doc := New()
	doc.Set("process.roles", "broker")
	doc.Set("node.id", "4")

	s.Require().Equal([]string{
		"KAFKA_NODE_ID=4",
		"KAFKA_PROCESS_ROLES=broker",
	}, doc.Environ("KAFKA"))
}

func TestDocumentSuite(t *testing.T) {
	suite.Run(t, new(DocumentSuite))
}
