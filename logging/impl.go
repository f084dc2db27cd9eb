package logging

import "go.uber.org/zap"

type impl struct {
	*zap.SugaredLogger
}

func (imp *impl) Sublogger(subname string) Logger {
	return &impl{imp.Named(subname)}
}
