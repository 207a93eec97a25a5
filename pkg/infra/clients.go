package infra

import (
	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/infra/paper"
)

type Clients struct {
	paper  interfaces.PaperAPI
	github interfaces.GitHub
}

type Option func(*Clients)

// New returns clients with the public PaperMC API configured. GitHub stays nil unless given.
func New(options ...Option) *Clients {
	client := &Clients{
		paper: paper.New(paper.DefaultBaseURL),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Paper() interfaces.PaperAPI {
	return x.paper
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}

func WithPaper(client interfaces.PaperAPI) Option {
	return func(x *Clients) {
		x.paper = client
	}
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}
