/*
Package chainstore keeps a Markov chain in a SQLite database instead of in
memory, for corpora whose chain is too large to hold comfortably in a Go map.

A Store implements markov.Chains, and the Writer it hands out implements
markov.Sink, so it plugs directly into markov.Builder and markov.Generator.
A store holds the chain of a single run: callers Reset it before building.
*/
package chainstore
