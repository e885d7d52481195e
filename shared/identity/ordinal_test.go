package identity

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type OrdinalSuite struct {
	suite.Suite
}

func (s *OrdinalSuite) TestParsesStatefulSetPodName() {
	ordinal, err := OrdinalFromPodName("kafka-broker-2")
	s.Require().NoError(err)
	s.Require().Equal(2, ordinal)
}

func (s *OrdinalSuite) TestParsesMultiDigitOrdinal() {
	ordinal, err := OrdinalFromPodName("kafka-12")
	s.Require().NoError(err)
	s.Require().Equal(12, ordinal)
}

func (s *OrdinalSuite) TestRejectsNameWithoutSuffix() {
	_, err := OrdinalFromPodName("kafka")
	s.Require().Error(err)
}

func (s *OrdinalSuite) TestRejectsNonNumericSuffix() {
	_, err := OrdinalFromPodName("kafka-broker")
	s.Require().Error(err)
}

func (s *OrdinalSuite) TestRejectsTrailingDash() {
	_, err := OrdinalFromPodName("kafka-")
	s.Require().Error(err)
}

func TestOrdinalSuite(t *testing.T) {
	suite.Run(t, new(OrdinalSuite))
}
