/*
Package ports defines the driven ports (interfaces) around the engine.

# Key Interfaces

  - ProgramStore: keeps named programs (rule lists plus initial tape and state).
    Implemented in memory, on the filesystem and in Redis.

RunProgramStoreContract is a shared test suite every ProgramStore adapter runs.
*/
package ports
