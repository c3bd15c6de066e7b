/*
Package builder turns a set of tracked seed nodes into a validated model graph.

The builder reads nodes and their links through a Source (normally the
registry) and never mutates them. A build is a multi-phase process:

 1. Discovery: starting from the seeds, follow parent and child links
    (in both directions) until no new node is found. The result is the
    complete reachable node set with no duplicates.

 2. Classification: look up the declared role of every discovered node.
    A role outside the four known ones is an internal consistency failure.

 3. Partitioning: mirror the discovered topology into a `dag` graph and
    split it into weakly connected components. Links that leave the
    discovered set indicate a discovery bug and abort the build.

 4. Validation: every component must contain at least one distribution and
    at least one variable. Components are checked in index order and the
    first violation is returned.

Construction is single threaded and synchronous. Each phase is exported on
its own so callers and tests can run them separately; Build chains them.
*/
package builder
