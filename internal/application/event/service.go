package event

type Service struct {
	repo    Repo
	members MembershipReader
	refdata RefData
	clock   Clock
}

func New(repo Repo, members MembershipReader, refdata RefData, clock Clock) *Service {
	return &Service{repo: repo, members: members, refdata: refdata, clock: clock}
}
