/*
Package markov builds second-order Markov chains from text and generates new
text by random-walking them.

A chain maps every pair of consecutive words (a Bigram) to the list of words
that followed that pair in the source text. Duplicates are kept, so a word
that followed a bigram three times is three times as likely to be chosen.
Generation starts from a random bigram and stops as soon as it reaches a
bigram that has no recorded continuation.

	chains := markov.Build(text)
	out, err := markov.Generate(chains)

Chains can also be written to any Sink (see the chainstore package for a
SQLite-backed one) with a Builder, and read back by a Generator through the
Chains interface.
*/
package markov
