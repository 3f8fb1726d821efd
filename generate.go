package emitter

//go:generate mockgen -destination=mock/transport.go -package=mock github.com/stripe/emitter Transport,Sampler
