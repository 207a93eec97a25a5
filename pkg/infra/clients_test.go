package infra_test

import (
	"testing"

	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/domain/mock"
	"github.com/Proximyst/typewriters/pkg/infra"
	"github.com/Proximyst/typewriters/pkg/infra/paper"
	"github.com/m-mizutani/gt"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		_, ok := clients.Paper().(*paper.Client)
		gt.True(t, ok)
		gt.V(t, clients.GitHub()).Equal(nil)
	})

	t.Run("WithPaper option sets the distribution API client", func(t *testing.T) {
		mockPaper := &mock.PaperAPIMock{}
		clients := infra.New(infra.WithPaper(mockPaper))
		gt.V(t, clients.Paper()).Equal(interfaces.PaperAPI(mockPaper))
	})

	t.Run("WithGitHub option sets GitHub client", func(t *testing.T) {
		mockGH := &mock.GitHubMock{}
		clients := infra.New(infra.WithGitHub(mockGH))
		gt.V(t, clients.GitHub()).Equal(interfaces.GitHub(mockGH))
	})
}
