package sqlinline

const QUpsertFieldState = `--sql 6dcf468e-fd00-4a1d-943b-368c2aa8e6b5
insert into field_states(session_id, field_key, complete, value, updated_at)
values ($1::uuid, $2::text, $3::bool, $4::jsonb, now())
on conflict (session_id, field_key) do update
set complete = excluded.complete,
    value = excluded.value,
    updated_at = now();
`

const QListFieldStates = `--sql 9e605501-f6c4-42fc-9354-050a8b0d090c
select session_id, field_key, complete, value, updated_at
from field_states
where session_id = $1::uuid
order by field_key asc;
`

const QInsertUpload = `--sql e5a2d430-cd30-4d20-981c-bc31832d69b6
insert into uploads(id, session_id, field_key, storage_key, mime, bytes, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::text, $5::bigint, now())
on conflict (session_id, field_key) do update
set storage_key = excluded.storage_key,
    mime = excluded.mime,
    bytes = excluded.bytes,
    created_at = now()
returning id;
`

const QListUploadsBySession = `--sql c5a37330-a276-4ae7-8cde-0cc9d06cd517
select id, session_id, field_key, storage_key, mime, bytes, created_at
from uploads
where session_id = $1::uuid
order by field_key asc;
`
