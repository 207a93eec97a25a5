package usecase

// Export unexported fields for testing
func (x *UseCase) CommitWindowForTest() int {
	return x.commitWindow
}
